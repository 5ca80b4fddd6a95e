// Package adapters はdrinksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cocktail_backend/internal/feature/drinks/domain/entity"
	"cocktail_backend/internal/feature/drinks/usecase"
)

// drinkMySQL はDrinkRepositoryインターフェースのMySQL実装です。
type drinkMySQL struct {
	db *gorm.DB
}

// drinkMySQLがDrinkRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.DrinkRepository = (*drinkMySQL)(nil)

// NewDrinkRepository は指定されたDB接続でdrinkMySQLリポジトリの新しいインスタンスを生成します。
func NewDrinkRepository(db *gorm.DB) *drinkMySQL {
	return &drinkMySQL{db: db}
}

// List は名前順にすべてのドリンクを返します。
func (r *drinkMySQL) List(ctx context.Context) ([]entity.Drink, error) {
	var drinks []entity.Drink
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&drinks).Error; err != nil {
		return nil, err
	}
	return drinks, nil
}

// FindByID はIDでドリンクを取得します。
// 存在しない場合、usecase.ErrDrinkNotFoundを返します。
func (r *drinkMySQL) FindByID(ctx context.Context, id uint) (*entity.Drink, error) {
	var d entity.Drink
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDrinkNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create はドリンクをデータベースに追加します。
func (r *drinkMySQL) Create(ctx context.Context, drink *entity.Drink) error {
	return r.db.WithContext(ctx).Create(drink).Error
}

// Update は既存のドリンクの編集可能なカラムのみを更新します。
// source_idとcreated_atは書き込み対象に含めません。書き込むと外部カタログとの
// 紐付けが消え、次回の取り込みで同じドリンクが重複行として再挿入されます。
func (r *drinkMySQL) Update(ctx context.Context, drink *entity.Drink) error {
	return r.db.WithContext(ctx).Model(drink).
		Select("name", "category", "alcoholic", "glass", "instructions", "image_url").
		Updates(drink).Error
}

// Delete はドリンクを削除します。対象が存在しない場合、usecase.ErrDrinkNotFoundを返します。
func (r *drinkMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Drink{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDrinkNotFound
	}
	return nil
}

// UpsertBatch は外部カタログ由来のドリンクをSourceIDをキーに一括挿入・更新します。
func (r *drinkMySQL) UpsertBatch(ctx context.Context, drinks []entity.Drink) error {
	if len(drinks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "alcoholic", "glass", "instructions", "image_url"}),
	}).Create(&drinks).Error
}
