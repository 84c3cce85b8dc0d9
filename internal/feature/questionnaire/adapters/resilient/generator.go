// Package resilient は生成モデル呼び出しに同時実行数制限、レート制限、タイムアウト、リトライを付与します。
package resilient

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/semaphore"

	"foresight_backend/internal/feature/questionnaire/usecase"
	"foresight_backend/internal/platform/ratelimiter"
)

// Generator は別のTextGeneratorをラップするデコレータです。
// 応答テキストの解釈は行わないため、出力不正によるリトライは発生しません。
type Generator struct {
	next       usecase.TextGenerator
	sem        *semaphore.Weighted
	limiter    ratelimiter.Limiter
	timeout    time.Duration
	maxRetries uint64
	baseDelay  time.Duration
}

// GeneratorがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*Generator)(nil)

// NewGenerator はcfgに従ってnextをラップします。
func NewGenerator(next usecase.TextGenerator, cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = def.MaxConcurrency
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = def.RetryBaseDelay
	}
	return &Generator{
		next:       next,
		sem:        semaphore.NewWeighted(cfg.MaxConcurrency),
		limiter:    ratelimiter.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
		timeout:    cfg.CallTimeout,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
	}
}

// Generate はnextを呼び出し、上流エラーの場合は指数バックオフで再試行します。
// 呼び出し元のctxが終了した後は再試行しません。
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		out     string
		attempt int
	)
	backoff := retry.WithMaxRetries(g.maxRetries, retry.NewExponential(g.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		text, err := g.attempt(ctx, prompt)
		if err == nil {
			out = text
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		slog.Warn("生成モデルの呼び出しに失敗しました",
			"attempt", attempt, "max_retries", g.maxRetries, "error", err)
		return retry.RetryableError(err)
	})
	if err != nil {
		return "", fmt.Errorf("generation failed after %d attempt(s): %w", attempt, err)
	}
	return out, nil
}

// attempt は同時実行枠とレート枠を確保し、タイムアウト付きで1回だけ呼び出します。
func (g *Generator) attempt(ctx context.Context, prompt string) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer g.sem.Release(1)

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Generate(callCtx, prompt)
}
