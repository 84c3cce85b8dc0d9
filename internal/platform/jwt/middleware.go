package jwtmw

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"foresight_backend/internal/api"
)

const (
	// ContextUserID is the gin context key holding the verified subject.
	ContextUserID = "userID"

	EnvKeyJWTSecret   = "JWT_SECRET"
	EnvKeyJWTAudience = "JWT_AUDIENCE"
)

// Config holds the verification settings for bearer tokens.
type Config struct {
	Secret   string // HMAC secret shared with the identity provider
	Audience string // expected "aud" claim; empty skips the check
}

// LoadConfig loads JWT settings from environment variables.
func LoadConfig() Config {
	return Config{
		Secret:   os.Getenv(EnvKeyJWTSecret),
		Audience: os.Getenv(EnvKeyJWTAudience),
	}
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// The token signature, expiry and audience are verified before "sub" is trusted.
func AuthRequired(cfg Config) gin.HandlerFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if cfg.Secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			slog.Error("JWT_SECRET is not set")
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
			return
		}

		// 2. Parse and verify JWT signature and registered claims
		var claims jwt.RegisteredClaims
		token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			slog.Warn("invalid bearer token", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
			return
		}

		// 3. The subject is the user id
		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
			return
		}
		c.Set(ContextUserID, claims.Subject)

		c.Next()
	}
}

// UserIDFrom returns the subject stored by AuthRequired.
func UserIDFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
