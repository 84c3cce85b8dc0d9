package resilient

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds the robustness settings applied to every model call of one credential.
type Config struct {
	MaxConcurrency     int64         // simultaneous in-flight calls
	RateLimitPerMinute int           // calls started per minute, 0 disables the limit
	CallTimeout        time.Duration // deadline of a single attempt
	MaxRetries         uint64        // retries after the first attempt
	RetryBaseDelay     time.Duration // first backoff delay, doubled on each retry
}

// DefaultConfig returns the settings used when no environment variable is set.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency:     4,
		RateLimitPerMinute: 60,
		CallTimeout:        30 * time.Second,
		MaxRetries:         2,
		RetryBaseDelay:     500 * time.Millisecond,
	}
}

// LoadConfig loads the settings from environment variables.
// Invalid values fall back to the defaults with a warning.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxConcurrency = intEnv("LLM_MAX_CONCURRENCY", cfg.MaxConcurrency, 1)
	cfg.RateLimitPerMinute = int(intEnv("LLM_RATE_LIMIT_PER_MINUTE", int64(cfg.RateLimitPerMinute), 0))
	cfg.MaxRetries = uint64(intEnv("LLM_MAX_RETRIES", int64(cfg.MaxRetries), 0))
	cfg.CallTimeout = durationEnv("LLM_CALL_TIMEOUT", cfg.CallTimeout)
	cfg.RetryBaseDelay = durationEnv("LLM_RETRY_BASE_DELAY", cfg.RetryBaseDelay)
	return cfg
}

func intEnv(key string, def, minValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < minValue {
		slog.Warn(fmt.Sprintf("[WARN] invalid %s, using default", key), "value", raw, "default", def)
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn(fmt.Sprintf("[WARN] invalid %s, using default", key), "value", raw, "default", def)
		return def
	}
	return v
}
