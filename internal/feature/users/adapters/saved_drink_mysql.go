package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cocktail_backend/internal/feature/users/domain/entity"
	"cocktail_backend/internal/feature/users/usecase"
)

// savedDrinkMySQL はSavedDrinkRepositoryインターフェースのMySQL実装です。
type savedDrinkMySQL struct {
	db *gorm.DB
}

// savedDrinkMySQLがSavedDrinkRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SavedDrinkRepository = (*savedDrinkMySQL)(nil)

// NewSavedDrinkMySQL は指定されたgorm.DB接続でsavedDrinkMySQLの新しいインスタンスを生成します。
func NewSavedDrinkMySQL(db *gorm.DB) *savedDrinkMySQL {
	return &savedDrinkMySQL{db: db}
}

// Save は保存済みドリンクに1件追加します。既に保存済みの場合は何もしません。
func (r *savedDrinkMySQL) Save(ctx context.Context, userID, drinkID uint) error {
	row := entity.SavedDrink{UserID: userID, DrinkID: drinkID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// Remove は保存済みドリンクから1件削除します。存在しない場合も成功扱いです。
func (r *savedDrinkMySQL) Remove(ctx context.Context, userID, drinkID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND drink_id = ?", userID, drinkID).
		Delete(&entity.SavedDrink{}).Error
}

// ListIDs はユーザーが保存したドリンクIDを保存順に返します。
func (r *savedDrinkMySQL) ListIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&entity.SavedDrink{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("drink_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
