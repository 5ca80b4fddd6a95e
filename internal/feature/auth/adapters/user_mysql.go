// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"cocktail_backend/internal/feature/auth/domain/entity"
	"cocktail_backend/internal/feature/auth/usecase"
)

// userMySQL はUserRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type userMySQL struct {
	db *gorm.DB
}

// userMySQLがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL は指定されたgorm.DB接続でuserMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// scope はデフォルトで無効化済みアカウントを除外するクエリを返します。
// includeInactive が true の場合のみソフトデリート済みのレコードも対象になります。
func (r *userMySQL) scope(ctx context.Context, includeInactive bool) *gorm.DB {
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	return q
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrEmailAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMySQL) FindByEmail(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
	var u entity.User
	if err := r.scope(ctx, includeInactive).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMySQL) FindByID(ctx context.Context, id uint, includeInactive bool) (*entity.User, error) {
	var u entity.User
	if err := r.scope(ctx, includeInactive).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByResetDigest は保存済みリセットトークンのダイジェストでユーザーを取得します。
func (r *userMySQL) FindByResetDigest(ctx context.Context, digest string) (*entity.User, error) {
	var u entity.User
	if err := r.scope(ctx, false).Where("password_reset_hash = ?", digest).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePassword はパスワードハッシュとPasswordChangedAtを1回のUPDATEで書き換えます。
func (r *userMySQL) UpdatePassword(ctx context.Context, id uint, passwordHash string, changedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":            passwordHash,
		"password_changed_at": changedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// SetResetToken はリセットトークンのダイジェストと有効期限を保存します。
func (r *userMySQL) SetResetToken(ctx context.Context, id uint, digest string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_reset_hash":       digest,
		"password_reset_expires_at": expiresAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ClearResetToken はリセットトークンのダイジェストと有効期限を両方削除します。
func (r *userMySQL) ClearResetToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_reset_hash":       nil,
		"password_reset_expires_at": nil,
	}).Error
}

// CompleteReset はダイジェストがまだ一致する場合のみパスワードを更新し、リセット項目を
// 削除します。並行する2件目のリセットは1件目の削除を観測して行が一致せず、
// usecase.ErrResetTokenInvalidで失敗します。
func (r *userMySQL) CompleteReset(ctx context.Context, id uint, digest, passwordHash string, changedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ? AND password_reset_hash = ?", id, digest).
		Updates(map[string]interface{}{
			"password":                  passwordHash,
			"password_changed_at":       changedAt,
			"password_reset_hash":       nil,
			"password_reset_expires_at": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrResetTokenInvalid
	}
	return nil
}

// Deactivate はアカウントを無効化します。レコードは削除されません。
// 既に無効化済みの場合も成功扱いです（冪等）。
func (r *userMySQL) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("active", false).Error
}
