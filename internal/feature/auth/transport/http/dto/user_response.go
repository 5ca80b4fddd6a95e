package dto

import "cocktail_backend/internal/feature/auth/domain/entity"

// UserResponse は外部に公開できるユーザー表現です。
// パスワードハッシュおよびリセット項目は一切含まれません。
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewUserResponse はエンティティから公開用のUserResponseを組み立てます。
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
