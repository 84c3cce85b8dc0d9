package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foresight_backend/internal/feature/questionnaire/domain/entity"
)

var testAnalysis = &entity.CompanyAnalysis{
	Category:    "Manufacturing",
	Domain:      "acme.example",
	Summary:     "Acme builds everything.",
	Competitors: []string{"Globex", "Initech", "Umbrella"},
}

// TestNewAnalysisCache_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewAnalysisCache_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", DefaultAnalysisTTL, DefaultAnalysisNamespace},
		{"negative ttl uses default", -time.Minute, "", DefaultAnalysisTTL, DefaultAnalysisNamespace},
		{"custom values preserved", time.Hour, "custom", time.Hour, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewAnalysisCache(nil, tt.ttl, tt.namespace)
			assert.Equal(t, tt.expectedTTL, c.ttl)
			assert.Equal(t, tt.expectedNamespace, c.namespace)
		})
	}
}

func TestAnalysisCache_CacheKey(t *testing.T) {
	t.Parallel()

	c := NewAnalysisCache(nil, 0, "")
	assert.Equal(t, "analysis:acme_corp", c.cacheKey(" Acme Corp "))
	assert.Equal(t, "analysis:a_b", c.cacheKey("A:B"))
}

func TestAnalysisCache_NilClient(t *testing.T) {
	t.Parallel()

	c := NewAnalysisCache(nil, 0, "")
	got, ok := c.Get(context.Background(), "Acme Corp")
	assert.False(t, ok)
	assert.Nil(t, got)
	c.Set(context.Background(), "Acme Corp", testAnalysis)
}

func TestAnalysisCache_Get(t *testing.T) {
	t.Parallel()

	cached, err := json.Marshal(testAnalysis)
	require.NoError(t, err)

	tests := []struct {
		name    string
		setup   func(mock redismock.ClientMock)
		want    *entity.CompanyAnalysis
		wantHit bool
	}{
		{
			name: "hit",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet("analysis:acme_corp").SetVal(string(cached))
			},
			want:    testAnalysis,
			wantHit: true,
		},
		{
			name: "miss",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet("analysis:acme_corp").RedisNil()
			},
		},
		{
			name: "redis error is a miss",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet("analysis:acme_corp").SetErr(errors.New("connection refused"))
			},
		},
		{
			name: "corrupted entry is deleted",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet("analysis:acme_corp").SetVal("{not json")
				mock.ExpectDel("analysis:acme_corp").SetVal(1)
			},
		},
		{
			name: "empty entry is deleted",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet("analysis:acme_corp").SetVal("{}")
				mock.ExpectDel("analysis:acme_corp").SetVal(1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := redismock.NewClientMock()
			tt.setup(mock)
			c := NewAnalysisCache(db, 0, "")

			got, ok := c.Get(context.Background(), "Acme Corp")

			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAnalysisCache_Set(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(testAnalysis)
	require.NoError(t, err)

	t.Run("stores with ttl", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		mock.ExpectSet("analysis:acme_corp", b, time.Hour).SetVal("OK")

		NewAnalysisCache(db, time.Hour, "").Set(context.Background(), "Acme Corp", testAnalysis)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		t.Parallel()

		db, mock := redismock.NewClientMock()
		mock.ExpectSet("analysis:acme_corp", b, time.Hour).SetErr(errors.New("READONLY"))

		NewAnalysisCache(db, time.Hour, "").Set(context.Background(), "Acme Corp", testAnalysis)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTTLFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"12h", 12 * time.Hour},
		{"forever", 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("ANALYSIS_CACHE_TTL", tt.value)
			assert.Equal(t, tt.want, TTLFromEnv())
		})
	}
}
