package di

import (
	"foresight_backend/internal/feature/tts/transport/handler"
	"foresight_backend/internal/feature/tts/usecase"
	"foresight_backend/internal/platform/externalapi/elevenlabs"
	infrahttp "foresight_backend/internal/platform/http"
)

// NewTTSHandler creates the text-to-speech handler with a configured ElevenLabs client.
func NewTTSHandler() *handler.TTSHandler {
	cfg := elevenlabs.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return handler.NewTTSHandler(usecase.NewTTSUsecase(elevenlabs.NewElevenLabsSynthesizer(cfg, httpClient)))
}
