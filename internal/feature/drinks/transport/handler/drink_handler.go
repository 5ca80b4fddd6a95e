// Package handler はdrinksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cocktail_backend/internal/api"
	"cocktail_backend/internal/feature/drinks/domain/entity"
	"cocktail_backend/internal/feature/drinks/transport/http/dto"
	"cocktail_backend/internal/feature/drinks/usecase"
)

// DrinkUsecase はドリンクカタログに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DrinkUsecase interface {
	ListDrinks(ctx context.Context) ([]entity.Drink, error)
	GetDrink(ctx context.Context, id uint) (*entity.Drink, error)
	CreateDrink(ctx context.Context, drink *entity.Drink) error
	UpdateDrink(ctx context.Context, drink *entity.Drink) error
	DeleteDrink(ctx context.Context, id uint) error
}

// DrinkHandler はドリンクカタログに関するHTTPリクエストを処理します。
type DrinkHandler struct {
	uc DrinkUsecase
}

// NewDrinkHandler は新しい DrinkHandler を作成します。
func NewDrinkHandler(uc DrinkUsecase) *DrinkHandler {
	return &DrinkHandler{uc: uc}
}

// parseID はURLパラメータのIDを解析します。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid drink id"))
		return 0, false
	}
	return uint(id), true
}

// List はカタログの全ドリンクを返すAPIです。
func (h *DrinkHandler) List(c *gin.Context) {
	drinks, err := h.uc.ListDrinks(c.Request.Context())
	if err != nil {
		slog.Error("failed to list drinks", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went wrong"))
		return
	}
	out := make([]dto.DrinkItem, 0, len(drinks))
	for i := range drinks {
		out = append(out, dto.NewDrinkItem(&drinks[i]))
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"drinks": out}))
}

// Get は指定IDのドリンクを返すAPIです。
func (h *DrinkHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	drink, err := h.uc.GetDrink(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrDrinkNotFound) {
			c.JSON(http.StatusNotFound, api.Error("drink not found"))
			return
		}
		slog.Error("failed to get drink", "drink_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went wrong"))
		return
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"drink": dto.NewDrinkItem(drink)}))
}

// Create は管理者によるドリンク作成APIです。
func (h *DrinkHandler) Create(c *gin.Context) {
	var req dto.CreateDrinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	drink := &entity.Drink{
		Name:         req.Name,
		Category:     req.Category,
		Alcoholic:    req.Alcoholic,
		Glass:        req.Glass,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
	}
	if err := h.uc.CreateDrink(c.Request.Context(), drink); err != nil {
		slog.Error("failed to create drink", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went wrong"))
		return
	}
	c.JSON(http.StatusCreated, api.Success(gin.H{"drink": dto.NewDrinkItem(drink)}))
}

// Update は管理者によるドリンク更新APIです。
func (h *DrinkHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateDrinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("invalid request"))
		return
	}

	drink := &entity.Drink{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Alcoholic:    req.Alcoholic,
		Glass:        req.Glass,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
	}
	if err := h.uc.UpdateDrink(c.Request.Context(), drink); err != nil {
		if errors.Is(err, usecase.ErrDrinkNotFound) {
			c.JSON(http.StatusNotFound, api.Error("drink not found"))
			return
		}
		slog.Error("failed to update drink", "drink_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went wrong"))
		return
	}
	c.JSON(http.StatusOK, api.Success(gin.H{"drink": dto.NewDrinkItem(drink)}))
}

// Delete は管理者によるドリンク削除APIです。
func (h *DrinkHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteDrink(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrDrinkNotFound) {
			c.JSON(http.StatusNotFound, api.Error("drink not found"))
			return
		}
		slog.Error("failed to delete drink", "drink_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went wrong"))
		return
	}
	c.Status(http.StatusNoContent)
}
