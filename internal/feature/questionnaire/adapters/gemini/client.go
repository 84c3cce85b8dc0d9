// Package gemini はGoogle Gemini APIを使用したテキスト生成クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"foresight_backend/internal/feature/questionnaire/usecase"
)

var (
	// ErrEmptyResponse はモデルがテキストを返さなかった場合のエラーです。
	ErrEmptyResponse = errors.New("gemini returned no text")
	// ErrBlocked はプロンプトが安全フィルタでブロックされた場合のエラーです。
	ErrBlocked = errors.New("gemini blocked the prompt")
)

// GeminiGenerator はGoogle Gemini APIを使用してテキストを生成します。
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// GeminiGeneratorがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator はGeminiGeneratorの新しいインスタンスを生成します。
// APIキーが空の場合は環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION によるADCを使用します。
func NewGeminiGenerator(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiGenerator, error) {
	var cc *genai.ClientConfig
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		}
		if cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	var gc *genai.GenerateContentConfig
	if cfg.Temperature != nil || cfg.TopP != nil {
		gc = &genai.GenerateContentConfig{Temperature: cfg.Temperature, TopP: cfg.TopP}
	}

	return &GeminiGenerator{client: client, model: model, config: gc}, nil
}

// Generate はプロンプトをモデルに送り、応答テキストをそのまま返します。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
