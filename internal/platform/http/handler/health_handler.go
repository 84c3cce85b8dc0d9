// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"foresight_backend/internal/api"
)

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// 依存サービスは確認せず、プロセスが応答できることだけを返します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// Pinger は依存サービスへの疎通確認です。
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc は関数をPingerとして扱うためのアダプタです。
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// readyTimeout は依存サービス1件あたりの疎通確認の上限時間です。
const readyTimeout = 2 * time.Second

// Ready は /readyz 用のハンドラーを返します。
// 登録された依存のいずれかが応答しない場合は503を返します。
func Ready(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		for name, p := range deps {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
			err := p.Ping(ctx)
			cancel()
			if err != nil {
				slog.Warn("readiness check failed", "dependency", name, "error", err)
				c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{
					Error:   "dependency unavailable",
					Details: name,
				})
				return
			}
		}
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}
