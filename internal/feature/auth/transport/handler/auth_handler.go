// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cocktail_backend/internal/api"
	"cocktail_backend/internal/feature/auth/transport/http/dto"
	"cocktail_backend/internal/feature/auth/transport/middleware"
	"cocktail_backend/internal/feature/auth/usecase"
)

// sessionCookie はセッショントークンを運ぶHTTP-onlyクッキーの名前です。
const sessionCookie = "jwt"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、セッショントークンを発行します。
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.Session, error)
	// Login はユーザーを認証し、成功時にセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.Session, error)
	// UpdatePassword は認証済みユーザーのパスワードを変更し、新しいトークンを発行します。
	UpdatePassword(ctx context.Context, userID uint, current, newPassword, confirm string) (*usecase.Session, error)
	// ForgotPassword はリセットシークレットを生成・配送します。
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword は提示されたシークレットを検証し、新しいパスワードを設定します。
	ResetPassword(ctx context.Context, secret, newPassword, confirm string) (*usecase.Session, error)
	// Deactivate はアカウントを無効化します（ソフトデリート）。
	Deactivate(ctx context.Context, userID uint) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// セッショントークンはレスポンスボディとHTTP-onlyクッキーの両方で返します。
type AuthHandler struct {
	auth AuthUsecase
	// secureCookie が true の場合、クッキーにSecure属性を付与します（本番環境）。
	secureCookie bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

// setSessionCookie はトークンの有効期限に合わせたHTTP-onlyクッキーを設定します。
func (h *AuthHandler) setSessionCookie(c *gin.Context, tokenString string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(sessionCookie, tokenString, maxAge, "/", "", h.secureCookie, true)
}

// clearSessionCookie はセッションクッキーを即時失効させます。
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", h.secureCookie, true)
}

// sessionPayload はトークンとサニタイズ済みユーザーを成功エンベロープ用に組み立てます。
func sessionPayload(s *usecase.Session) gin.H {
	return gin.H{
		"token": s.Token,
		"user":  dto.NewUserResponse(s.User),
	}
}

// writeError はユースケースのエラーをHTTPステータスと汎用メッセージに対応付けます。
// 想定内（operational）のエラーはそのまま、想定外のエラーは詳細をログに残した上で
// 内部情報を含まない500を返します。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPasswordMismatch),
		errors.Is(err, usecase.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, api.Error("signup failed"))
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.Error(usecase.ErrInvalidCredentials.Error()))
	case errors.Is(err, usecase.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, api.Error(usecase.ErrWrongPassword.Error()))
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, api.Error("the user no longer exists"))
	case errors.Is(err, usecase.ErrResetTokenInvalid):
		c.JSON(http.StatusUnauthorized, api.Error(usecase.ErrResetTokenInvalid.Error()))
	case errors.Is(err, usecase.ErrDeliveryFailed):
		c.JSON(http.StatusInternalServerError, api.Error("could not send the reset token, please try again later"))
	default:
		slog.Error("unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went wrong"))
	}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー時は400を返却
// - 成功時は201でトークンとサニタイズ済みユーザーを返却（クッキーも設定）
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	session, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}

	slog.Info("user signup successful", "user_id", session.User.ID)
	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusCreated, api.Success(sessionPayload(session)))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時はどのフィールドが誤っていたか分からない汎用メッセージで401を返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}

	slog.Info("user login successful", "user_id", session.User.ID)
	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, api.Success(sessionPayload(session)))
}

// Logout はセッションクッキーを失効させます。トークン自体の失効リストは持ちません
// （ステートレス設計。トークンは自然満了まで有効なままです）。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, api.Success(nil))
}

// ForgotPassword はパスワードリセットの起点です。メールアドレスが登録済みか
// どうかに関わらず、同じ形のレスポンスを返します。
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.Success(gin.H{
		"message": "if that email is registered, a reset token has been sent",
	}))
}

// ResetPassword は/resetPassword/:tokenエンドポイントを処理します。
// URLパラメータのシークレットを検証し、成功時は新しいセッションを返します。
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	session, err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		slog.Warn("password reset failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}

	slog.Info("password reset successful", "user_id", session.User.ID)
	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, api.Success(sessionPayload(session)))
}

// UpdatePassword は認証済みユーザーのパスワード変更を処理します。
// 成功時は新しいトークンを返します（既存トークンは以後の認可チェックで失効）。
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	session, err := h.auth.UpdatePassword(c.Request.Context(), userID, req.PasswordCurrent, req.Password, req.PasswordConfirm)
	if err != nil {
		slog.Warn("password update failed", "error", err, "user_id", userID)
		writeError(c, err)
		return
	}

	slog.Info("password updated", "user_id", userID)
	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.JSON(http.StatusOK, api.Success(sessionPayload(session)))
}

// DeactivateMe は自分のアカウントを無効化します（ソフトデリート）。
// レコードは保持されるため、管理者からは引き続き参照できます。
func (h *AuthHandler) DeactivateMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	if err := h.auth.Deactivate(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	slog.Info("user deactivated", "user_id", userID)
	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
