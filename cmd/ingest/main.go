package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"cocktail_backend/internal/app/di"
	"cocktail_backend/internal/feature/drinks/adapters"
	"cocktail_backend/internal/feature/drinks/usecase"
	infradb "cocktail_backend/internal/platform/db"
	"cocktail_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	db := infradb.OpenDB()
	catalog := di.NewCatalog()
	drinkRepo := adapters.NewDrinkRepository(db)

	// 外部APIのレートリミットに合わせて取得間隔を調整
	limiter := ratelimiter.NewRateLimiter(30, time.Minute)
	uc := usecase.NewIngestUsecase(catalog, drinkRepo, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := uc.IngestAll(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("ingest ok")
}
