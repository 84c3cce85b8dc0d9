// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"

	"foresight_backend/internal/feature/questionnaire/adapters/gemini"
	"foresight_backend/internal/feature/questionnaire/adapters/resilient"
	"foresight_backend/internal/feature/questionnaire/extract"
	"foresight_backend/internal/feature/questionnaire/transport/handler"
	"foresight_backend/internal/feature/questionnaire/usecase"
	"foresight_backend/internal/platform/cache"
	infrahttp "foresight_backend/internal/platform/http"
)

// NewQuestionnaireHandler creates the questionnaire handler backed by Gemini.
// Model calls go through the resilient wrapper (concurrency, rate limit, retry).
// A nil rdb disables the company analysis cache.
func NewQuestionnaireHandler(ctx context.Context, rdb *redis.Client) (*handler.QuestionnaireHandler, error) {
	cfg := gemini.LoadConfig()
	gen, err := gemini.NewGeminiGenerator(ctx, cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	if err != nil {
		return nil, err
	}

	var ac usecase.AnalysisCache
	if rdb != nil {
		ac = cache.NewAnalysisCache(rdb, cache.TTLFromEnv(), cache.DefaultAnalysisNamespace)
	}

	ex := extract.New(extract.StrategyByName(os.Getenv("EXTRACTION_STRATEGY")))
	uc := usecase.NewQuestionnaireUsecase(resilient.NewGenerator(gen, resilient.LoadConfig()), ex, ac)
	return handler.NewQuestionnaireHandler(uc), nil
}
