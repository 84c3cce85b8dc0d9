package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func runMiddleware(cfg Config, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	AuthRequired(cfg)(c)
	return w, c
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に401が返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	cfg := Config{Secret: "test-secret"}

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runMiddleware(cfg, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

// TestAuthRequired_MissingJWTSecret はシークレット未設定の場合に500が返されることを検証します。
func TestAuthRequired_MissingJWTSecret(t *testing.T) {
	w, c := runMiddleware(Config{}, "Bearer sometoken")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で401が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	const testSecret = "test-secret-key-for-invalid"
	cfg := Config{Secret: testSecret, Audience: "authenticated"}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createToken(t, "wrong-secret", jwt.MapClaims{"sub": "user-1", "aud": "authenticated", "exp": exp(time.Hour)})},
		{"expired token", createToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "aud": "authenticated", "exp": exp(-time.Hour)})},
		{"missing expiry", createToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "aud": "authenticated"})},
		{"wrong audience", createToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "aud": "anon", "exp": exp(time.Hour)})},
		{"missing subject", createToken(t, testSecret, jwt.MapClaims{"aud": "authenticated", "exp": exp(time.Hour)})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runMiddleware(cfg, "Bearer "+tt.token)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
			_, ok := UserIDFrom(c)
			assert.False(t, ok)
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、コンテキストにユーザーIDが設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	const testSecret = "test-secret-key-for-valid"

	tests := []struct {
		name     string
		cfg      Config
		claims   jwt.MapClaims
		expected string
	}{
		{
			name:     "uuid subject with audience",
			cfg:      Config{Secret: testSecret, Audience: "authenticated"},
			claims:   jwt.MapClaims{"sub": "6f1c2b1e-0d7a-4f43-9a55-0c6a1c7c9f10", "aud": "authenticated", "exp": exp(time.Hour)},
			expected: "6f1c2b1e-0d7a-4f43-9a55-0c6a1c7c9f10",
		},
		{
			name:     "audience not checked when unset",
			cfg:      Config{Secret: testSecret},
			claims:   jwt.MapClaims{"sub": "user-42", "aud": "anything", "exp": exp(time.Hour)},
			expected: "user-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runMiddleware(tt.cfg, "Bearer "+createToken(t, testSecret, tt.claims))

			require.False(t, c.IsAborted(), "response: %s", w.Body.String())
			userID, ok := UserIDFrom(c)
			require.True(t, ok)
			assert.Equal(t, tt.expected, userID)
		})
	}
}

// TestAuthRequired_InvalidSigningMethod はnoneアルゴリズム（未署名）のトークンが拒否されることを検証します。
func TestAuthRequired_InvalidSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp(time.Hour),
	})
	tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w, _ := runMiddleware(Config{Secret: "test-secret-key-for-signing"}, "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "s3cret")
	t.Setenv(EnvKeyJWTAudience, "authenticated")

	assert.Equal(t, Config{Secret: "s3cret", Audience: "authenticated"}, LoadConfig())
}

func exp(d time.Duration) int64 {
	return time.Now().Add(d).Unix()
}

// createToken はテスト用に指定されたシークレットとクレームで署名済みJWTトークンを生成します。
func createToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
