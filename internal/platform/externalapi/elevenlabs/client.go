package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"foresight_backend/internal/feature/tts/domain/entity"
	"foresight_backend/internal/feature/tts/usecase"
	"foresight_backend/internal/platform/externalapi/elevenlabs/dto"
)

// ElevenLabsSynthesizer はElevenLabs APIで音声を合成するSynthesizer実装です。
type ElevenLabsSynthesizer struct {
	cfg    Config
	client *http.Client
}

// ElevenLabsSynthesizerがSynthesizerを実装していることをコンパイル時に検証します。
var _ usecase.Synthesizer = (*ElevenLabsSynthesizer)(nil)

// NewElevenLabsSynthesizer は指定された設定とHTTPクライアントでElevenLabsSynthesizerの新しいインスタンスを生成します。
func NewElevenLabsSynthesizer(cfg Config, client *http.Client) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{cfg: cfg, client: client}
}

// Synthesize はテキストを音声に変換し、MP3ストリームをそのまま返します。
func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text string) (*entity.Audio, error) {
	body, err := json.Marshal(dto.TextToSpeechRequest{
		Text:    text,
		ModelID: DefaultModelID,
		VoiceSettings: dto.VoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.8,
		},
	})
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v1/text-to-speech/%s", s.cfg.BaseURL, url.PathEscape(s.cfg.VoiceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 400 {
		defer func() {
			if err := res.Body.Close(); err != nil {
				slog.Warn("failed to close response body", "error", err)
			}
		}()
		var e dto.ErrorResponse
		if err := json.NewDecoder(io.LimitReader(res.Body, 64<<10)).Decode(&e); err == nil && e.Detail.Message != "" {
			return nil, fmt.Errorf("elevenlabs http %d: %s", res.StatusCode, e.Detail.Message)
		}
		return nil, fmt.Errorf("elevenlabs http %d", res.StatusCode)
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return &entity.Audio{
		Body:          res.Body,
		ContentType:   contentType,
		ContentLength: res.ContentLength,
	}, nil
}
