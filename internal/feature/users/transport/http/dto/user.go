// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	authentity "cocktail_backend/internal/feature/auth/domain/entity"
	"cocktail_backend/internal/feature/users/usecase"
)

// UserItem は外部に公開できるユーザー表現です。
// パスワードハッシュおよびリセット項目は一切含まれません。
type UserItem struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// NewUserItem はエンティティから公開用のUserItemを組み立てます。
func NewUserItem(u *authentity.User) UserItem {
	return UserItem{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Active: u.Active,
	}
}

// ProfileResponse はMe応答（ユーザーと保存済みドリンクID）の表現です。
type ProfileResponse struct {
	User        UserItem `json:"user"`
	SavedDrinks []uint   `json:"savedDrinks"`
}

// NewProfileResponse はユースケースのProfileから応答を組み立てます。
func NewProfileResponse(p *usecase.Profile) ProfileResponse {
	ids := p.SavedDrinks
	if ids == nil {
		ids = []uint{}
	}
	return ProfileResponse{User: NewUserItem(p.User), SavedDrinks: ids}
}

// UpdateMeReq は/updateMeエンドポイントのリクエストボディを表します。
// パスワード関連のフィールドはこのルートでは受け付けません（ハンドラーで拒否）。
type UpdateMeReq struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// AdminUpdateUserReq は管理者によるユーザー更新リクエストのボディを表します。
type AdminUpdateUserReq struct {
	Name   string `json:"name"`
	Email  string `json:"email" binding:"omitempty,email"`
	Role   string `json:"role" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}
