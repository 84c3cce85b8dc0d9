package gemini

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// DefaultTimeout はHTTPリクエスト全体のデフォルトタイムアウトです。
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey      string        // GEMINI_API_KEY. Empty means ADC / Vertex AI env vars are used
	Model       string        // model name (e.g., "gemini-2.5-flash")
	BaseURL     string        // optional endpoint override
	Temperature *float32      // nil leaves the model default
	TopP        *float32      // nil leaves the model default
	Timeout     time.Duration // HTTP request timeout
}

// LoadConfig loads Gemini configuration from environment variables.
// Unparsable sampling values are ignored with a warning.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   os.Getenv("GEMINI_MODEL"),
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
		Timeout: DefaultTimeout,
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cfg.Temperature = floatEnv("GEMINI_TEMPERATURE")
	cfg.TopP = floatEnv("GEMINI_TOP_P")
	return cfg
}

func floatEnv(key string) *float32 {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		slog.Warn(fmt.Sprintf("[WARN] invalid %s, using model default", key), "value", raw, "error", err)
		return nil
	}
	f := float32(v)
	return &f
}
