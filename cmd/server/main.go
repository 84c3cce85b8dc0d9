package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"foresight_backend/internal/app/di"
	"foresight_backend/internal/app/router"
	infradb "foresight_backend/internal/platform/db"
	"foresight_backend/internal/platform/http/handler"
	jwtmw "foresight_backend/internal/platform/jwt"
	infraredis "foresight_backend/internal/platform/redis"
)

const defaultPort = "4000"

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Println("[ERROR] Failed to close database:", err)
		}
	}()

	ready := map[string]handler.Pinger{"db": handler.PingerFunc(sqlDB.PingContext)}

	// Redis（任意）
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfig(); !rcfg.Enabled() {
		log.Println("[INFO] Redis not configured. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache:", err)
	} else {
		rdb = tmp
		ready["redis"] = handler.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Handler
	questionnaireH, err := di.NewQuestionnaireHandler(ctx, rdb)
	if err != nil {
		log.Fatalf("failed to initialize questionnaire: %v", err)
	}
	projectH := di.NewProjectHandler(db)
	ttsH := di.NewTTSHandler()

	jwtCfg := jwtmw.LoadConfig()
	// JWT_SECRETチェック
	if jwtCfg.Secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Authenticated routes will return 500.")
	}

	// ルータ生成
	r := router.NewRouter(router.Config{
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		JWT:            jwtCfg,
		Ready:          ready,
		Logger:         logger,
	}, router.Handlers{
		Questionnaire: questionnaireH,
		Project:       projectH,
		TTS:           ttsH,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	slog.Info("server stopped")
}

func logLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
