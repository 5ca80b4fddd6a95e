// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cocktail_backend/internal/api"
	authentity "cocktail_backend/internal/feature/auth/domain/entity"
	"cocktail_backend/internal/feature/auth/transport/middleware"
	drinkusecase "cocktail_backend/internal/feature/drinks/usecase"
	"cocktail_backend/internal/feature/users/transport/http/dto"
	"cocktail_backend/internal/feature/users/usecase"
)

// UserUsecase はユーザープロフィール操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	Me(ctx context.Context, userID uint) (*usecase.Profile, error)
	UpdateMe(ctx context.Context, userID uint, name, email string) (*authentity.User, error)
	SaveDrink(ctx context.Context, userID, drinkID uint) error
	RemoveDrink(ctx context.Context, userID, drinkID uint) error
	ListUsers(ctx context.Context, includeInactive bool) ([]authentity.User, error)
	GetUser(ctx context.Context, id uint) (*usecase.Profile, error)
	AdminUpdateUser(ctx context.Context, id uint, name, email string, role authentity.Role, active bool) (*authentity.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// UserHandler はユーザープロフィールと保存済みドリンクのHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// writeError はユースケースのエラーをHTTPステータスに対応付けます。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.Error("user not found"))
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, api.Error("email already in use"))
	case errors.Is(err, usecase.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, api.Error("invalid role"))
	case errors.Is(err, drinkusecase.ErrDrinkNotFound):
		c.JSON(http.StatusNotFound, api.Error("drink not found"))
	default:
		slog.Error("unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went wrong"))
	}
}

// parseID はURLパラメータのIDを解析します。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid id"))
		return 0, false
	}
	return uint(id), true
}

// Me は自分のプロフィールと保存済みドリンクIDを返すAPIです。
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	profile, err := h.uc.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Success(dto.NewProfileResponse(profile)))
}

// UpdateMe は表示名とメールアドレスの更新APIです。
// パスワード関連のフィールドが含まれる場合は400を返します（/updateMyPassword専用）。
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}
	if req.Password != "" || req.PasswordConfirm != "" {
		c.JSON(http.StatusBadRequest, api.Error("this route is not for password updates, please use /updateMyPassword"))
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	user, err := h.uc.UpdateMe(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"user": dto.NewUserItem(user)}))
}

// SaveDrink はカタログのドリンクを保存済みに追加するAPIです。
func (h *UserHandler) SaveDrink(c *gin.Context) {
	drinkID, ok := parseID(c)
	if !ok {
		return
	}
	userID := c.GetUint(middleware.ContextUserID)
	if err := h.uc.SaveDrink(c.Request.Context(), userID, drinkID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"saved": drinkID}))
}

// RemoveDrink は保存済みドリンクから1件削除するAPIです。
func (h *UserHandler) RemoveDrink(c *gin.Context) {
	drinkID, ok := parseID(c)
	if !ok {
		return
	}
	userID := c.GetUint(middleware.ContextUserID)
	if err := h.uc.RemoveDrink(c.Request.Context(), userID, drinkID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"removed": drinkID}))
}

// List は管理者向けのユーザー一覧APIです。?includeInactive=true で無効化済みも含みます。
func (h *UserHandler) List(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	users, err := h.uc.ListUsers(c.Request.Context(), includeInactive)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.UserItem, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserItem(&users[i]))
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"users": out}))
}

// Get は管理者向けの任意ユーザー参照APIです。無効化済みアカウントも参照できます。
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	profile, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Success(dto.NewProfileResponse(profile)))
}

// Update は管理者によるユーザー属性の更新APIです。パスワードの更新はできません。
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AdminUpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	user, err := h.uc.AdminUpdateUser(c.Request.Context(), id, req.Name, req.Email, authentity.Role(req.Role), *req.Active)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"user": dto.NewUserItem(user)}))
}

// Delete は管理者によるユーザーレコードの完全削除APIです。
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
