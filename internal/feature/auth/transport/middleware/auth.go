// Package middleware はリクエスト単位の認証・認可ゲートを提供します。
// 保護されたハンドラーの前に実行され、検証済みのプリンシパル（ユーザーIDとロール）を
// リクエストコンテキストに載せます。
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cocktail_backend/internal/api"
	"cocktail_backend/internal/feature/auth/domain/entity"
	"cocktail_backend/internal/platform/token"
)

// コンテキストに載せるプリンシパルのキー。
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// sessionCookie はセッショントークンを運ぶクッキーの名前です。
const sessionCookie = "jwt"

// TokenVerifier はセッショントークンの検証を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/token）ではなくコンシューマーが定義します。
type TokenVerifier interface {
	Verify(tokenString string) (token.Claims, error)
}

// UserLoader はトークンのクレームに対応する現在のユーザーの取得を抽象化します。
type UserLoader interface {
	FindByID(ctx context.Context, id uint, includeInactive bool) (*entity.User, error)
}

// extractToken はクッキー優先・Authorizationヘッダーをフォールバックとして
// トークンを取り出します。両方が存在する場合はクッキーが勝ちます。
func extractToken(c *gin.Context) (string, bool) {
	if v, err := c.Cookie(sessionCookie); err == nil && v != "" {
		return v, true
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		if v := strings.TrimPrefix(auth, "Bearer "); v != "" {
			return v, true
		}
	}
	return "", false
}

// RequireAuth は認証必須ルート用のミドルウェアを返します。
// トークンの抽出と検証、ユーザーの存在・有効性の確認、トークン発行後の
// パスワード変更チェックを行い、プリンシパルをコンテキストに設定します。
// すべての失敗は401で、本文には失敗理由の詳細を含めません。
func RequireAuth(verifier TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("you are not logged in"))
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			// 期限切れと署名不正はログ上でのみ区別する
			if errors.Is(err, token.ErrExpired) {
				slog.Warn("auth rejected: token expired", "remote_addr", c.ClientIP())
			} else {
				slog.Warn("auth rejected: token invalid", "remote_addr", c.ClientIP())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("invalid or expired token, please log in again"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID, false)
		if err != nil {
			slog.Warn("auth rejected: user missing or inactive", "user_id", claims.UserID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("the user belonging to this token no longer exists"))
			return
		}

		if user.PasswordChangedAfter(claims.IssuedAt) {
			slog.Warn("auth rejected: token predates password change", "user_id", user.ID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("password was recently changed, please log in again"))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

// RestrictTo は指定のロールのみを通すミドルウェアを返します。RequireAuthの後に
// 適用する前提です。プリンシパルは既知のため、403は認証失敗と区別されます。
func RestrictTo(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Error("you are not logged in"))
			return
		}
		if _, ok := allowed[role.(entity.Role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, api.Error("you do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}
