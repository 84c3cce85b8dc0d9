// migrate はprojectフィーチャーのテーブルを作成・更新するバッチです。
// デプロイ前にサーバーとは別に実行します。
package main

import (
	"log"

	"github.com/joho/godotenv"

	infradb "foresight_backend/internal/platform/db"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg := infradb.LoadConfigFromEnv()
	cfg.Migrate = false

	db, err := infradb.OpenDB(cfg)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}
	if err := infradb.Migrate(db); err != nil {
		log.Fatal(err)
	}
	log.Println("migrate ok")
}
