// Package cache provides Redis-backed caches for generated results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"foresight_backend/internal/feature/questionnaire/domain/entity"
	"foresight_backend/internal/feature/questionnaire/usecase"
)

const (
	DefaultAnalysisTTL       = 24 * time.Hour
	DefaultAnalysisNamespace = "analysis"
)

// AnalysisCache stores company analyses in Redis, keyed by normalised company name.
// Every failure is logged and treated as a miss so that generation still proceeds.
type AnalysisCache struct {
	rdb       redis.Cmdable
	ttl       time.Duration
	namespace string
}

var _ usecase.AnalysisCache = (*AnalysisCache)(nil)

// NewAnalysisCache creates an AnalysisCache.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "analysis".
// A nil client disables the cache.
func NewAnalysisCache(rdb redis.Cmdable, ttl time.Duration, namespace string) *AnalysisCache {
	if ttl <= 0 {
		ttl = DefaultAnalysisTTL
	}
	if namespace == "" {
		namespace = DefaultAnalysisNamespace
	}
	return &AnalysisCache{rdb: rdb, ttl: ttl, namespace: namespace}
}

// TTLFromEnv reads ANALYSIS_CACHE_TTL (e.g., "12h"). Invalid or empty values return 0.
func TTLFromEnv() time.Duration {
	raw := os.Getenv("ANALYSIS_CACHE_TTL")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("[WARN] invalid ANALYSIS_CACHE_TTL, using default", "value", raw, "error", err)
		return 0
	}
	return d
}

// Get returns the cached analysis for companyName.
func (c *AnalysisCache) Get(ctx context.Context, companyName string) (*entity.CompanyAnalysis, bool) {
	if c.rdb == nil {
		return nil, false
	}
	key := c.cacheKey(companyName)

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("analysis cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var out entity.CompanyAnalysis
	if err := json.Unmarshal(b, &out); err != nil || out.IsZero() {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &out, true
}

// Set stores the analysis (best effort).
func (c *AnalysisCache) Set(ctx context.Context, companyName string, a *entity.CompanyAnalysis) {
	if c.rdb == nil || a == nil {
		return
	}
	key := c.cacheKey(companyName)

	b, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("analysis cache write failed", "key", key, "error", err)
	}
}

// cacheKey generates a cache key for a company name.
func (c *AnalysisCache) cacheKey(companyName string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(strings.ToLower(strings.TrimSpace(companyName))))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
