// Package dto はdrinksフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "cocktail_backend/internal/feature/drinks/domain/entity"

// DrinkItem はカタログ応答の1件分の表現です。
type DrinkItem struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Alcoholic    bool   `json:"alcoholic"`
	Glass        string `json:"glass"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"imageUrl"`
}

// NewDrinkItem はエンティティから応答用のDrinkItemを組み立てます。
func NewDrinkItem(d *entity.Drink) DrinkItem {
	return DrinkItem{
		ID:           d.ID,
		Name:         d.Name,
		Category:     d.Category,
		Alcoholic:    d.Alcoholic,
		Glass:        d.Glass,
		Instructions: d.Instructions,
		ImageURL:     d.ImageURL,
	}
}

// CreateDrinkReq は管理者によるドリンク作成リクエストのボディを表します。
type CreateDrinkReq struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Alcoholic    bool   `json:"alcoholic"`
	Glass        string `json:"glass"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"imageUrl"`
}

// UpdateDrinkReq は管理者によるドリンク更新リクエストのボディを表します。
type UpdateDrinkReq struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Alcoholic    bool   `json:"alcoholic"`
	Glass        string `json:"glass"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"imageUrl"`
}
