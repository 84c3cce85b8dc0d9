// Package handler はttsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"foresight_backend/internal/api"
	"foresight_backend/internal/feature/tts/domain/entity"
	"foresight_backend/internal/feature/tts/usecase"
)

// TTSUsecase は音声合成のユースケースインターフェースです。
type TTSUsecase interface {
	Speak(ctx context.Context, text string) (*entity.Audio, error)
}

// TTSHandler は音声合成のHTTPリクエストを処理します。
type TTSHandler struct {
	uc TTSUsecase
}

// NewTTSHandler はTTSHandlerの新しいインスタンスを生成します。
func NewTTSHandler(uc TTSUsecase) *TTSHandler {
	return &TTSHandler{uc: uc}
}

// Speak は合成した音声をそのままストリームで返します。
//
// エンドポイント: POST /api/tts
func (h *TTSHandler) Speak(c *gin.Context) {
	var req api.TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Text is required"})
		return
	}

	audio, err := h.uc.Speak(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidText) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Text is required", Details: err.Error()})
			return
		}
		slog.Error("音声合成に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Failed to synthesize speech"})
		return
	}
	defer func() {
		if err := audio.Body.Close(); err != nil {
			slog.Warn("音声ストリームのクローズに失敗", "error", err)
		}
	}()

	c.DataFromReader(http.StatusOK, audio.ContentLength, audio.ContentType, audio.Body, nil)
}
