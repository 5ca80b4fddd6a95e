// Package usecase はusersフィーチャーのビジネスロジックを実装します。
// プロフィール閲覧・更新、保存済みドリンクの追加・削除、管理者向けの
// ユーザー管理を提供します。認証資格情報（パスワード・リセット項目）の
// 書き込みはauthフィーチャーの専権であり、ここでは扱いません。
package usecase

import (
	"context"
	"strings"

	authentity "cocktail_backend/internal/feature/auth/domain/entity"
	drinkentity "cocktail_backend/internal/feature/drinks/domain/entity"
)

// UserRepository はユーザーレコードの参照とプロフィール更新を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByID は指定のIDに一致するユーザーを取得します。
	// includeInactive が true の場合、無効化済みアカウントも対象になります。
	FindByID(ctx context.Context, id uint, includeInactive bool) (*authentity.User, error)

	// List は全ユーザーを返します。includeInactive が false の場合、
	// 無効化済みアカウントは除外されます。
	List(ctx context.Context, includeInactive bool) ([]authentity.User, error)

	// UpdateProfile は表示名とメールアドレスのみを更新します。
	// メールアドレスの衝突時はErrEmailAlreadyExistsを返します。
	UpdateProfile(ctx context.Context, id uint, name, email string) error

	// AdminUpdate は管理者による属性（名前・メール・ロール・有効フラグ）の更新です。
	// パスワードには触れません。
	AdminUpdate(ctx context.Context, id uint, name, email string, role authentity.Role, active bool) error

	// Delete はユーザーレコードを完全に削除します（管理者専用）。
	Delete(ctx context.Context, id uint) error
}

// SavedDrinkRepository は保存済みドリンクの永続化を抽象化します。
type SavedDrinkRepository interface {
	// Save はユーザーの保存済みドリンクに1件追加します。既に保存済みの場合は何もしません。
	Save(ctx context.Context, userID, drinkID uint) error

	// Remove はユーザーの保存済みドリンクから1件削除します。存在しない場合も成功扱いです。
	Remove(ctx context.Context, userID, drinkID uint) error

	// ListIDs はユーザーが保存したドリンクIDを保存順に返します。
	ListIDs(ctx context.Context, userID uint) ([]uint, error)
}

// DrinkCatalog は保存対象のドリンクが実在するかの確認に使うカタログ参照です。
type DrinkCatalog interface {
	GetDrink(ctx context.Context, id uint) (*drinkentity.Drink, error)
}

// Profile はMe応答用の、ユーザーと保存済みドリンクIDの組です。
type Profile struct {
	User        *authentity.User
	SavedDrinks []uint
}

// UserUsecase はプロフィールと保存済みドリンクのビジネスロジックを実装します。
type UserUsecase struct {
	users  UserRepository
	saved  SavedDrinkRepository
	drinks DrinkCatalog
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, saved SavedDrinkRepository, drinks DrinkCatalog) *UserUsecase {
	return &UserUsecase{users: users, saved: saved, drinks: drinks}
}

// Me は自分のプロフィールと保存済みドリンクIDを返します。
func (u *UserUsecase) Me(ctx context.Context, userID uint) (*Profile, error) {
	user, err := u.users.FindByID(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	ids, err := u.saved.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, SavedDrinks: ids}, nil
}

// UpdateMe は表示名とメールアドレスを更新します。空の項目は変更しません。
func (u *UserUsecase) UpdateMe(ctx context.Context, userID uint, name, email string) (*authentity.User, error) {
	user, err := u.users.FindByID(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name == "" {
		name = user.Name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email == "" {
		email = user.Email
	}

	if err := u.users.UpdateProfile(ctx, userID, name, email); err != nil {
		return nil, err
	}
	user.Name = name
	user.Email = email
	return user, nil
}

// SaveDrink はカタログのドリンクを保存済みに追加します。
// 実在しないドリンクIDはdrinksフィーチャーのErrDrinkNotFoundで失敗します。
func (u *UserUsecase) SaveDrink(ctx context.Context, userID, drinkID uint) error {
	if _, err := u.drinks.GetDrink(ctx, drinkID); err != nil {
		return err
	}
	return u.saved.Save(ctx, userID, drinkID)
}

// RemoveDrink は保存済みドリンクから1件削除します。冪等です。
func (u *UserUsecase) RemoveDrink(ctx context.Context, userID, drinkID uint) error {
	return u.saved.Remove(ctx, userID, drinkID)
}

// ListUsers は管理者向けにユーザー一覧を返します。
// includeInactive が true の場合、無効化済みアカウントも含まれます。
func (u *UserUsecase) ListUsers(ctx context.Context, includeInactive bool) ([]authentity.User, error) {
	return u.users.List(ctx, includeInactive)
}

// GetUser は管理者向けに任意のユーザーを返します。無効化済みアカウントも
// 参照できます（ソフトデリートされたレコードの確認用）。
func (u *UserUsecase) GetUser(ctx context.Context, id uint) (*Profile, error) {
	user, err := u.users.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	ids, err := u.saved.ListIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, SavedDrinks: ids}, nil
}

// AdminUpdateUser は管理者によるユーザー属性の更新です。ロールは閉じた列挙の
// 範囲で検証されます。パスワードの変更はできません。
func (u *UserUsecase) AdminUpdateUser(ctx context.Context, id uint, name, email string, role authentity.Role, active bool) (*authentity.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := u.users.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name == "" {
		name = user.Name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email == "" {
		email = user.Email
	}

	if err := u.users.AdminUpdate(ctx, id, name, email, role, active); err != nil {
		return nil, err
	}
	user.Name = name
	user.Email = email
	user.Role = role
	user.Active = active
	return user, nil
}

// DeleteUser は管理者によるユーザーレコードの完全削除です。
func (u *UserUsecase) DeleteUser(ctx context.Context, id uint) error {
	return u.users.Delete(ctx, id)
}
