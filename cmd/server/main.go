package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"cocktail_backend/internal/app/di"
	"cocktail_backend/internal/app/router"
	authadapters "cocktail_backend/internal/feature/auth/adapters"
	authhandler "cocktail_backend/internal/feature/auth/transport/handler"
	authusecase "cocktail_backend/internal/feature/auth/usecase"
	drinkhandler "cocktail_backend/internal/feature/drinks/transport/handler"
	drinkusecase "cocktail_backend/internal/feature/drinks/usecase"
	usersadapters "cocktail_backend/internal/feature/users/adapters"
	userhandler "cocktail_backend/internal/feature/users/transport/handler"
	usersusecase "cocktail_backend/internal/feature/users/usecase"
	"cocktail_backend/internal/platform/cache"
	infradb "cocktail_backend/internal/platform/db"
	"cocktail_backend/internal/platform/mail"
	"cocktail_backend/internal/platform/password"
	infraredis "cocktail_backend/internal/platform/redis"
	"cocktail_backend/internal/platform/resettoken"
	"cocktail_backend/internal/platform/token"
	"cocktail_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// トークン発行（シークレット未設定なら起動させない）
	issuer, err := token.NewIssuer(os.Getenv("JWT_SECRET"), 24*time.Hour)
	if err != nil {
		log.Fatal("JWT_SECRET must be set: ", err)
	}

	hasher := password.NewHasher(0)
	resets := resettoken.NewSource(0)

	// メール送信（SMTP未設定なら開発用のログ出力にフォールバック）
	var mailer authusecase.Mailer
	if os.Getenv("SMTP_HOST") != "" {
		mailer = mail.NewSMTPMailer(mail.LoadConfig())
	} else {
		log.Println("[WARN] SMTP_HOST is not set. Reset mails are logged, not sent. Set MAIL_LOG_BODY=true to log their bodies at debug level.")
		mailer = &mail.LogMailer{RevealBody: os.Getenv("MAIL_LOG_BODY") == "true"}
	}

	// Repository
	authRepo := authadapters.NewUserMySQL(db)
	userRepo := usersadapters.NewUserMySQL(db)
	savedRepo := usersadapters.NewSavedDrinkMySQL(db)

	// Redisキャッシュでラップ（翌朝の取り込みまでをTTLの上限に）
	drinkRepo := di.NewDrinkRepository(rdb, db, cache.TimeUntilNextHour(6))

	// Usecase
	authUC := authusecase.NewAuthUsecase(authRepo, hasher, issuer, resets, mailer)
	drinkUC := drinkusecase.NewDrinkUsecase(drinkRepo)
	userUC := usersusecase.NewUserUsecase(userRepo, savedRepo, drinkUC)

	// Handler
	secureCookie := os.Getenv("COOKIE_SECURE") == "true"
	authH := authhandler.NewAuthHandler(authUC, secureCookie)
	drinkH := drinkhandler.NewDrinkHandler(drinkUC)
	userH := userhandler.NewUserHandler(userUC)

	// IPごとのレートリミット
	limiter := ratelimiter.NewIPLimiter(100, time.Hour)

	// ルータ生成
	r := router.NewRouter(router.Deps{
		Auth:    authH,
		Users:   userH,
		Drinks:  drinkH,
		Token:   issuer,
		Loader:  authRepo,
		Limiter: limiter,
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
