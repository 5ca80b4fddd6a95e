// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	authentity "cocktail_backend/internal/feature/auth/domain/entity"
	"cocktail_backend/internal/feature/users/usecase"
)

// userMySQL はusersフィーチャーのUserRepositoryインターフェースのMySQL実装です。
// authフィーチャーと同じusersテーブルを参照しますが、資格情報の列には書き込みません。
type userMySQL struct {
	db *gorm.DB
}

// userMySQLがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL は指定されたgorm.DB接続でuserMySQLの新しいインスタンスを生成します。
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// scope はデフォルトで無効化済みアカウントを除外するクエリを返します。
func (r *userMySQL) scope(ctx context.Context, includeInactive bool) *gorm.DB {
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	return q
}

// FindByID はIDでユーザーを取得します。
func (r *userMySQL) FindByID(ctx context.Context, id uint, includeInactive bool) (*authentity.User, error) {
	var u authentity.User
	if err := r.scope(ctx, includeInactive).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List は登録順に全ユーザーを返します。
func (r *userMySQL) List(ctx context.Context, includeInactive bool) ([]authentity.User, error) {
	var users []authentity.User
	if err := r.scope(ctx, includeInactive).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// isDuplicate はユニークキー重複のエラーかを判定します。
func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// UpdateProfile は表示名とメールアドレスのみを更新します。
func (r *userMySQL) UpdateProfile(ctx context.Context, id uint, name, email string) error {
	// 変更が無い場合MySQLは影響行数0を返すため、存在確認には使わない
	// （呼び出し元のユースケースが事前にFindByIDで確認している）。
	err := r.db.WithContext(ctx).Model(&authentity.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":  name,
		"email": email,
	}).Error
	if err != nil && isDuplicate(err) {
		return usecase.ErrEmailAlreadyExists
	}
	return err
}

// AdminUpdate は名前・メール・ロール・有効フラグを更新します。パスワード関連の列には触れません。
func (r *userMySQL) AdminUpdate(ctx context.Context, id uint, name, email string, role authentity.Role, active bool) error {
	err := r.db.WithContext(ctx).Model(&authentity.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":   name,
		"email":  email,
		"role":   role,
		"active": active,
	}).Error
	if err != nil && isDuplicate(err) {
		return usecase.ErrEmailAlreadyExists
	}
	return err
}

// Delete はユーザーレコードを完全に削除します。
func (r *userMySQL) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&authentity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
