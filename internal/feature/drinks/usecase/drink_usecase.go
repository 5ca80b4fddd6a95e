// Package usecase はdrinksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"cocktail_backend/internal/feature/drinks/domain/entity"
)

// ErrDrinkNotFound is returned when no drink matches the given ID.
var ErrDrinkNotFound = errors.New("drink not found")

// DrinkRepository はドリンクカタログの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type DrinkRepository interface {
	// List は名前順にすべてのドリンクを返します。
	List(ctx context.Context) ([]entity.Drink, error)

	// FindByID は指定のIDに一致するドリンクを取得します。
	// 存在しない場合、ErrDrinkNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Drink, error)

	// Create は新しいドリンクをカタログに追加します。
	Create(ctx context.Context, drink *entity.Drink) error

	// Update は既存のドリンクの編集可能なフィールドを更新します。
	// SourceIDとCreatedAtは変更しません。
	Update(ctx context.Context, drink *entity.Drink) error

	// Delete はドリンクをカタログから削除します。
	Delete(ctx context.Context, id uint) error

	// UpsertBatch は外部カタログ由来のドリンクをSourceIDをキーに一括挿入・更新します。
	UpsertBatch(ctx context.Context, drinks []entity.Drink) error
}

// DrinkUsecase はカタログ閲覧と管理者向けCRUDのビジネスロジックを提供します。
type DrinkUsecase struct {
	repo DrinkRepository
}

// NewDrinkUsecase は新しいDrinkUsecaseを生成します。
func NewDrinkUsecase(r DrinkRepository) *DrinkUsecase {
	return &DrinkUsecase{repo: r}
}

// ListDrinks はカタログの全ドリンクを返します。
func (u *DrinkUsecase) ListDrinks(ctx context.Context) ([]entity.Drink, error) {
	return u.repo.List(ctx)
}

// GetDrink は指定IDのドリンクを返します。
func (u *DrinkUsecase) GetDrink(ctx context.Context, id uint) (*entity.Drink, error) {
	return u.repo.FindByID(ctx, id)
}

// CreateDrink は管理者が作成したドリンクをカタログに追加します。
func (u *DrinkUsecase) CreateDrink(ctx context.Context, drink *entity.Drink) error {
	return u.repo.Create(ctx, drink)
}

// UpdateDrink は既存のドリンクを更新します。
func (u *DrinkUsecase) UpdateDrink(ctx context.Context, drink *entity.Drink) error {
	if _, err := u.repo.FindByID(ctx, drink.ID); err != nil {
		return err
	}
	return u.repo.Update(ctx, drink)
}

// DeleteDrink はドリンクをカタログから削除します。
func (u *DrinkUsecase) DeleteDrink(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
