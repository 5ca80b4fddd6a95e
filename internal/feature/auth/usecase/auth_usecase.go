// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cocktail_backend/internal/feature/auth/domain/entity"
	"cocktail_backend/internal/platform/resettoken"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// storeTimeout は永続化層・通知層の1回の呼び出しに許容する時間です。
	// 超過した場合は再試行可能なエラーとして呼び出し元に返されます。
	storeTimeout = 5 * time.Second
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// includeInactive が false の場合、無効化されたアカウントは存在しないものとして扱います。
	FindByEmail(ctx context.Context, email string, includeInactive bool) (*entity.User, error)

	// FindByID は指定のIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint, includeInactive bool) (*entity.User, error)

	// FindByResetDigest は保存済みリセットトークンのダイジェストが一致するユーザーを取得します。
	FindByResetDigest(ctx context.Context, digest string) (*entity.User, error)

	// UpdatePassword はパスワードハッシュとPasswordChangedAtを単一の更新で書き換えます。
	UpdatePassword(ctx context.Context, id uint, passwordHash string, changedAt time.Time) error

	// SetResetToken はリセットトークンのダイジェストと有効期限を保存します。
	SetResetToken(ctx context.Context, id uint, digest string, expiresAt time.Time) error

	// ClearResetToken はリセットトークンのダイジェストと有効期限を両方削除します。
	ClearResetToken(ctx context.Context, id uint) error

	// CompleteReset はダイジェストがまだ一致する場合に限り、新しいパスワードハッシュを
	// 設定しリセット項目を削除します。条件に一致する行が無い場合（既に使用済み等）、
	// ErrResetTokenInvalidを返します。
	CompleteReset(ctx context.Context, id uint, digest, passwordHash string, changedAt time.Time) error

	// Deactivate はアカウントを無効化します（ソフトデリート）。レコードは保持されます。
	Deactivate(ctx context.Context, id uint) error
}

// PasswordHasher はパスワードの一方向ハッシュ化と検証を抽象化します。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	// DummyVerify はユーザーが存在しない場合に呼び出し、タイミングの差を無くします。
	DummyVerify(plaintext string)
}

// TokenIssuer は署名付きセッショントークンの発行を抽象化します。
type TokenIssuer interface {
	Issue(userID uint) (token string, expiresAt time.Time, err error)
}

// ResetTokenSource はワンタイムのリセットシークレットの生成を抽象化します。
type ResetTokenSource interface {
	Generate() (secret, digest string, expiresAt time.Time, err error)
}

// Mailer はリセットシークレットの帯域外配送を抽象化します。
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Session はサインアップ・ログイン等の成功時に返される認証結果です。
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// SignupInput は新規登録リクエストの入力値です。
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// AuthUsecase は認証・アクセス制御のビジネスロジックを実装します。
// パスワードハッシュ・リセット項目・PasswordChangedAtの唯一の書き込み元です。
type AuthUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	resets ResetTokenSource
	mailer Mailer
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, resets ResetTokenSource, mailer Mailer) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		resets: resets,
		mailer: mailer,
	}
}

// normalizeEmail はメールアドレスを小文字化・トリムして正規化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateNewPassword はパスワードと確認入力がポリシーを満たすか検証します。
func validateNewPassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、セッショントークンを発行します。
// ロールは常に "user" で作成されます（ロールは入力から受け取りません）。
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	if err := validateNewPassword(in.Password, in.PasswordConfirm); err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:              strings.TrimSpace(in.Name),
		Email:             normalizeEmail(in.Email),
		Password:          hashed,
		Role:              entity.RoleUser,
		Active:            true,
		PasswordChangedAt: time.Now(),
	}

	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := u.users.Create(cctx, user); err != nil {
		return nil, err
	}

	return u.newSession(user)
}

// Login はユーザーを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもダミーのハッシュ比較を実行し、
// 未検出とパスワード不一致で同一のエラーを返します。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*Session, error) {
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := u.users.FindByEmail(cctx, normalizeEmail(email), false)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// ユーザー未検出でも同じ計算コストを消費する
			u.hasher.DummyVerify(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return u.newSession(user)
}

// UpdatePassword は認証済みユーザーのパスワードを変更します。
// 現在のパスワードを検証し、ハッシュとPasswordChangedAtを原子的に更新した上で、
// 新しいセッショントークンを発行します。既存のトークンはPasswordChangedAtの
// 前進により以後の認可チェックで失効します。
func (u *AuthUsecase) UpdatePassword(ctx context.Context, userID uint, current, newPassword, confirm string) (*Session, error) {
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := u.users.FindByID(cctx, userID, false)
	if err != nil {
		return nil, err
	}

	if !u.hasher.Verify(current, user.Password) {
		return nil, ErrWrongPassword
	}

	if err := validateNewPassword(newPassword, confirm); err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	changedAt := time.Now()
	if err := u.users.UpdatePassword(cctx, user.ID, hashed, changedAt); err != nil {
		return nil, err
	}
	user.Password = hashed
	user.PasswordChangedAt = changedAt

	return u.newSession(user)
}

// ForgotPassword はリセットシークレットを生成・保存し、帯域外で配送します。
// メールアドレスが未登録の場合でもエラーを返しません（成功と同じ形の応答に
// なるため、登録済みアドレスの列挙ができません）。配送に失敗した場合は保存済みの
// リセット項目をロールバックし、ErrDeliveryFailedを返します。
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := u.users.FindByEmail(cctx, normalizeEmail(email), false)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	secret, digest, expiresAt, err := u.resets.Generate()
	if err != nil {
		return err
	}

	if err := u.users.SetResetToken(cctx, user.ID, digest, expiresAt); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Forgot your password? Submit a request with your new password and this token: %s\n"+
			"The token is valid for 10 minutes. If you didn't request a reset, ignore this message.",
		secret,
	)
	if err := u.mailer.Send(cctx, user.Email, "Your password reset token", body); err != nil {
		// 配送に失敗したトークンは使えないため、保存済みの状態を取り消す
		if clearErr := u.users.ClearResetToken(cctx, user.ID); clearErr != nil {
			slog.Error("failed to roll back reset token", "user_id", user.ID, "error", clearErr)
		}
		slog.Error("failed to dispatch reset token", "user_id", user.ID, "error", err)
		return ErrDeliveryFailed
	}

	return nil
}

// ResetPassword は提示されたシークレットを検証し、新しいパスワードを設定します。
// シークレットは一度しか使えません。成功時にリセット項目は削除され、
// PasswordChangedAtが前進し、新しいセッショントークンが発行されます。
func (u *AuthUsecase) ResetPassword(ctx context.Context, secret, newPassword, confirm string) (*Session, error) {
	if err := validateNewPassword(newPassword, confirm); err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	digest := resettoken.Digest(secret)
	user, err := u.users.FindByResetDigest(cctx, digest)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	if user.PasswordResetHash == nil || user.PasswordResetExpiresAt == nil ||
		!resettoken.Matches(secret, *user.PasswordResetHash, *user.PasswordResetExpiresAt) {
		return nil, ErrResetTokenInvalid
	}

	hashed, err := u.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 条件付き更新により、同じシークレットを使う並行リクエストの2件目は失敗する
	changedAt := time.Now()
	if err := u.users.CompleteReset(cctx, user.ID, digest, hashed, changedAt); err != nil {
		return nil, err
	}
	user.Password = hashed
	user.PasswordChangedAt = changedAt
	user.PasswordResetHash = nil
	user.PasswordResetExpiresAt = nil

	return u.newSession(user)
}

// Deactivate はアカウントを無効化します。レコードと保存済みドリンクは保持されますが、
// 以後のログインとデフォルトの検索からは除外されます。
func (u *AuthUsecase) Deactivate(ctx context.Context, userID uint) error {
	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return u.users.Deactivate(cctx, userID)
}

// newSession はトークンを発行してSessionを組み立てます。
func (u *AuthUsecase) newSession(user *entity.User) (*Session, error) {
	token, expiresAt, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
