package router

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cocktail_backend/internal/feature/auth/domain/entity"
	authhandler "cocktail_backend/internal/feature/auth/transport/handler"
	"cocktail_backend/internal/feature/auth/transport/middleware"
	drinkhandler "cocktail_backend/internal/feature/drinks/transport/handler"
	userhandler "cocktail_backend/internal/feature/users/transport/handler"
	"cocktail_backend/internal/platform/http/handler"
	"cocktail_backend/internal/shared/ratelimiter"
)

// Deps はルーター構築に必要なハンドラーとミドルウェアの依存一式です。
type Deps struct {
	Auth    *authhandler.AuthHandler
	Users   *userhandler.UserHandler
	Drinks  *drinkhandler.DrinkHandler
	Token   middleware.TokenVerifier
	Loader  middleware.UserLoader
	Limiter *ratelimiter.IPLimiter
}

// NewRouter はAPI全体のルーティングを構築します。
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	// CORS追加 クッキー認証のためオリジン指定時はクレデンシャルを許可
	corsCfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsCfg.AllowOrigins = strings.Split(origins, ",")
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	// 導通確認用
	r.GET("/healthz", handler.Health)

	api := r.Group("/api/v1")
	if d.Limiter != nil {
		// /api 配下のみIPごとのレートリミットを適用
		api.Use(d.Limiter.Middleware())
	}

	requireAuth := middleware.RequireAuth(d.Token, d.Loader)
	adminOnly := middleware.RestrictTo(entity.RoleAdmin)

	users := api.Group("/users")
	{
		// 認証不要
		users.POST("/signup", d.Auth.Signup)
		users.POST("/login", d.Auth.Login)
		users.GET("/logout", d.Auth.Logout)
		users.POST("/forgotPassword", d.Auth.ForgotPassword)
		users.PATCH("/resetPassword/:token", d.Auth.ResetPassword)

		// 認証必須のルート
		me := users.Group("")
		me.Use(requireAuth)
		{
			me.PATCH("/updateMyPassword", d.Auth.UpdatePassword)
			me.GET("/me", d.Users.Me)
			me.PATCH("/updateMe", d.Users.UpdateMe)
			me.DELETE("/deleteMe", d.Auth.DeactivateMe)
			me.PATCH("/addDrink/:id", d.Users.SaveDrink)
			me.PATCH("/removeDrink/:id", d.Users.RemoveDrink)
		}

		// 管理者専用のユーザー管理
		admin := users.Group("")
		admin.Use(requireAuth, adminOnly)
		{
			admin.GET("", d.Users.List)
			admin.GET("/:id", d.Users.Get)
			admin.PATCH("/:id", d.Users.Update)
			admin.DELETE("/:id", d.Users.Delete)
		}
	}

	drinks := api.Group("/drinks")
	{
		// カタログの閲覧は認証不要
		drinks.GET("", d.Drinks.List)
		drinks.GET("/:id", d.Drinks.Get)

		// カタログの変更は管理者専用
		mutate := drinks.Group("")
		mutate.Use(requireAuth, adminOnly)
		{
			mutate.POST("", d.Drinks.Create)
			mutate.PATCH("/:id", d.Drinks.Update)
			mutate.DELETE("/:id", d.Drinks.Delete)
		}
	}

	return r
}
