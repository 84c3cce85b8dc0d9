package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	projecthandler "foresight_backend/internal/feature/project/transport/handler"
	questionnairehandler "foresight_backend/internal/feature/questionnaire/transport/handler"
	ttshandler "foresight_backend/internal/feature/tts/transport/handler"
	"foresight_backend/internal/platform/http/handler"
	"foresight_backend/internal/platform/http/middleware"
	jwtmw "foresight_backend/internal/platform/jwt"
)

// Config はルーター全体の設定です。
type Config struct {
	// AllowedOrigins はCORSで許可するオリジンです。空の場合はすべてのオリジンを許可します。
	AllowedOrigins []string
	JWT            jwtmw.Config
	// Ready は /readyz で疎通確認する依存サービスです。
	Ready  map[string]handler.Pinger
	Logger *slog.Logger
}

// Handlers はルーティング対象のフィーチャーハンドラーです。
type Handlers struct {
	Questionnaire *questionnairehandler.QuestionnaireHandler
	Project       *projecthandler.ProjectHandler
	TTS           *ttshandler.TTSHandler
}

func NewRouter(cfg Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(cfg.Logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(cfg.Ready))

	api := r.Group("/api")

	// 回答者向けのアンケート画面から呼ばれるため認証不要
	api.POST("/ai/generate-mc-options", h.Questionnaire.GenerateMCOptions)
	api.POST("/ai/generate-followup", h.Questionnaire.GenerateFollowUp)
	api.POST("/tts", h.TTS.Speak)

	// 認証必須のルート
	auth := api.Group("")
	auth.Use(jwtmw.AuthRequired(cfg.JWT))
	{
		auth.POST("/ai/analyze-company", h.Questionnaire.AnalyzeCompany)
		auth.POST("/ai/generate-questions", h.Questionnaire.GenerateQuestions)
		auth.POST("/ai/generate-project-report", h.Questionnaire.GenerateProjectReport)

		auth.POST("/projects", h.Project.Create)
		auth.GET("/projects/:id", h.Project.Get)
		auth.POST("/projects/:id/response", h.Project.AppendResponse)
		auth.POST("/profiles", h.Project.UpsertProfile)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		// 資格情報付きのリクエストでは "*" を返せないため、要求元をそのまま許可する
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
