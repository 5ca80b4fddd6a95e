package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cocktail_backend/internal/feature/auth/domain/entity"
	"cocktail_backend/internal/platform/resettoken"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *entity.User) error
	FindByEmailFunc       func(ctx context.Context, email string, includeInactive bool) (*entity.User, error)
	FindByIDFunc          func(ctx context.Context, id uint, includeInactive bool) (*entity.User, error)
	FindByResetDigestFunc func(ctx context.Context, digest string) (*entity.User, error)
	UpdatePasswordFunc    func(ctx context.Context, id uint, passwordHash string, changedAt time.Time) error
	SetResetTokenFunc     func(ctx context.Context, id uint, digest string, expiresAt time.Time) error
	ClearResetTokenFunc   func(ctx context.Context, id uint) error
	CompleteResetFunc     func(ctx context.Context, id uint, digest, passwordHash string, changedAt time.Time) error
	DeactivateFunc        func(ctx context.Context, id uint) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email, includeInactive)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint, includeInactive bool) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, includeInactive)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByResetDigest(ctx context.Context, digest string) (*entity.User, error) {
	if m.FindByResetDigestFunc != nil {
		return m.FindByResetDigestFunc(ctx, digest)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string, changedAt time.Time) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash, changedAt)
	}
	return nil
}

func (m *mockUserRepository) SetResetToken(ctx context.Context, id uint, digest string, expiresAt time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, digest, expiresAt)
	}
	return nil
}

func (m *mockUserRepository) ClearResetToken(ctx context.Context, id uint) error {
	if m.ClearResetTokenFunc != nil {
		return m.ClearResetTokenFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) CompleteReset(ctx context.Context, id uint, digest, passwordHash string, changedAt time.Time) error {
	if m.CompleteResetFunc != nil {
		return m.CompleteResetFunc(ctx, id, digest, passwordHash, changedAt)
	}
	return nil
}

func (m *mockUserRepository) Deactivate(ctx context.Context, id uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}

// mockHasher is a mock implementation of the PasswordHasher interface.
// Hashing prepends a marker; verification compares against it. It records
// whether DummyVerify was called so timing-mitigation paths can be asserted.
type mockHasher struct {
	dummyCalled bool
}

func (m *mockHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (m *mockHasher) Verify(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

func (m *mockHasher) DummyVerify(plaintext string) {
	m.dummyCalled = true
}

// failingHasher always fails to hash.
type failingHasher struct {
	mockHasher
}

func (f *failingHasher) Hash(plaintext string) (string, error) {
	return "", errors.New("hash failure")
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	IssueFunc func(userID uint) (string, time.Time, error)
}

func (m *mockTokenIssuer) Issue(userID uint) (string, time.Time, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID)
	}
	return "mock-session-token", time.Now().Add(24 * time.Hour), nil
}

// mockResetSource is a mock implementation of the ResetTokenSource interface.
type mockResetSource struct {
	GenerateFunc func() (string, string, time.Time, error)
}

func (m *mockResetSource) Generate() (string, string, time.Time, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	secret := "mock-reset-secret"
	return secret, resettoken.Digest(secret), time.Now().Add(10 * time.Minute), nil
}

// mockMailer is a mock implementation of the Mailer interface.
type mockMailer struct {
	SendFunc func(ctx context.Context, to, subject, body string) error
	lastTo   string
	lastBody string
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	m.lastTo = to
	m.lastBody = body
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

func newTestUsecase(repo *mockUserRepository) (*AuthUsecase, *mockHasher, *mockMailer) {
	hasher := &mockHasher{}
	mailer := &mockMailer{}
	uc := NewAuthUsecase(repo, hasher, &mockTokenIssuer{}, &mockResetSource{}, mailer)
	return uc, hasher, mailer
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				user.ID = 1
				return nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		session, err := uc.Signup(context.Background(), SignupInput{
			Name:            "  Alice  ",
			Email:           " Alice@Example.COM ",
			Password:        "password123",
			PasswordConfirm: "password123",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if created == nil {
			t.Fatal("expected user to be created")
		}
		if created.Password != "hashed:password123" {
			t.Errorf("password was not hashed: %q", created.Password)
		}
		if created.Email != "alice@example.com" {
			t.Errorf("email was not normalized: %q", created.Email)
		}
		if created.Name != "Alice" {
			t.Errorf("name was not trimmed: %q", created.Name)
		}
		if created.Role != entity.RoleUser {
			t.Errorf("expected role user, got %q", created.Role)
		}
		if !created.Active {
			t.Error("expected account to be active")
		}
		if created.PasswordChangedAt.IsZero() {
			t.Error("expected PasswordChangedAt to be set")
		}

		if session.Token != "mock-session-token" {
			t.Errorf("expected session token, got %q", session.Token)
		}
		if session.User.ID != 1 {
			t.Errorf("expected user ID 1, got %d", session.User.ID)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		uc, _, _ := newTestUsecase(&mockUserRepository{})

		_, err := uc.Signup(context.Background(), SignupInput{
			Email:           "a@example.com",
			Password:        "short",
			PasswordConfirm: "short",
		})
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		uc, _, _ := newTestUsecase(&mockUserRepository{})

		_, err := uc.Signup(context.Background(), SignupInput{
			Email:           "a@example.com",
			Password:        "password123",
			PasswordConfirm: "password456",
		})
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.Signup(context.Background(), SignupInput{
			Email:           "taken@example.com",
			Password:        "password123",
			PasswordConfirm: "password123",
		})
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})

	t.Run("hash failure", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &failingHasher{}, &mockTokenIssuer{}, &mockResetSource{}, &mockMailer{})

		_, err := uc.Signup(context.Background(), SignupInput{
			Email:           "a@example.com",
			Password:        "password123",
			PasswordConfirm: "password123",
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: "hashed:password123",
		Role:     entity.RoleUser,
		Active:   true,
	}

	t.Run("successful login", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
				if includeInactive {
					t.Error("login must not include inactive accounts")
				}
				if email != testUser.Email {
					return nil, ErrUserNotFound
				}
				return testUser, nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		session, err := uc.Login(context.Background(), "Test@Example.com", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session.User.ID != 1 {
			t.Errorf("expected user ID 1, got %d", session.User.ID)
		}
		if session.Token == "" {
			t.Error("expected non-empty session token")
		}
	})

	t.Run("unknown email burns dummy verify", func(t *testing.T) {
		uc, hasher, _ := newTestUsecase(&mockUserRepository{})

		_, err := uc.Login(context.Background(), "unknown@example.com", "password123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if !hasher.dummyCalled {
			t.Error("expected dummy verify on unknown email")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
				return testUser, nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.Login(context.Background(), "test@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("repository failure is propagated", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
				return nil, expectedErr
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.Login(context.Background(), "test@example.com", "password123")
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_UpdatePassword(t *testing.T) {
	makeUser := func() *entity.User {
		return &entity.User{
			ID:       1,
			Email:    "test@example.com",
			Password: "hashed:oldpassword",
			Active:   true,
		}
	}

	t.Run("successful update", func(t *testing.T) {
		var updatedHash string
		var updatedAt time.Time
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint, includeInactive bool) (*entity.User, error) {
				return makeUser(), nil
			},
			UpdatePasswordFunc: func(ctx context.Context, id uint, passwordHash string, changedAt time.Time) error {
				updatedHash = passwordHash
				updatedAt = changedAt
				return nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		session, err := uc.UpdatePassword(context.Background(), 1, "oldpassword", "newpassword1", "newpassword1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updatedHash != "hashed:newpassword1" {
			t.Errorf("expected new hash to be stored, got %q", updatedHash)
		}
		if updatedAt.IsZero() {
			t.Error("expected PasswordChangedAt to advance")
		}
		if session.Token == "" {
			t.Error("expected a fresh session token")
		}
		if session.User.Password != "hashed:newpassword1" {
			t.Error("expected returned user to carry the new hash")
		}
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint, includeInactive bool) (*entity.User, error) {
				return makeUser(), nil
			},
			UpdatePasswordFunc: func(ctx context.Context, id uint, passwordHash string, changedAt time.Time) error {
				t.Error("password must not be updated with a wrong current password")
				return nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.UpdatePassword(context.Background(), 1, "not-the-password", "newpassword1", "newpassword1")
		if !errors.Is(err, ErrWrongPassword) {
			t.Errorf("expected ErrWrongPassword, got %v", err)
		}
	})

	t.Run("new password fails policy", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint, includeInactive bool) (*entity.User, error) {
				return makeUser(), nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.UpdatePassword(context.Background(), 1, "oldpassword", "short", "short")
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}

		_, err = uc.UpdatePassword(context.Background(), 1, "oldpassword", "newpassword1", "different1")
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
	})

	t.Run("user no longer exists", func(t *testing.T) {
		uc, _, _ := newTestUsecase(&mockUserRepository{})

		_, err := uc.UpdatePassword(context.Background(), 99, "oldpassword", "newpassword1", "newpassword1")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAuthUsecase_ForgotPassword(t *testing.T) {
	testUser := &entity.User{
		ID:     1,
		Email:  "test@example.com",
		Active: true,
	}

	t.Run("unknown email reports success", func(t *testing.T) {
		uc, _, mailer := newTestUsecase(&mockUserRepository{})

		err := uc.ForgotPassword(context.Background(), "unknown@example.com")
		if err != nil {
			t.Fatalf("expected nil for unknown email, got %v", err)
		}
		if mailer.lastTo != "" {
			t.Error("no mail must be sent for an unknown email")
		}
	})

	t.Run("stores digest and mails the secret", func(t *testing.T) {
		var storedDigest string
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
				return testUser, nil
			},
			SetResetTokenFunc: func(ctx context.Context, id uint, digest string, expiresAt time.Time) error {
				storedDigest = digest
				return nil
			},
		}
		uc, _, mailer := newTestUsecase(repo)

		if err := uc.ForgotPassword(context.Background(), "test@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if mailer.lastTo != testUser.Email {
			t.Errorf("expected mail to %q, got %q", testUser.Email, mailer.lastTo)
		}
		// The mail carries the plaintext secret, storage only its digest
		if !strings.Contains(mailer.lastBody, "mock-reset-secret") {
			t.Error("expected mail body to contain the reset secret")
		}
		if storedDigest != resettoken.Digest("mock-reset-secret") {
			t.Error("expected the digest of the secret to be stored")
		}
		if strings.Contains(storedDigest, "mock-reset-secret") {
			t.Error("plaintext secret must never be stored")
		}
	})

	t.Run("delivery failure rolls back the token", func(t *testing.T) {
		cleared := false
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
				return testUser, nil
			},
			ClearResetTokenFunc: func(ctx context.Context, id uint) error {
				cleared = true
				return nil
			},
		}
		uc, _, _ := newTestUsecase(repo)
		uc.mailer = &mockMailer{
			SendFunc: func(ctx context.Context, to, subject, body string) error {
				return errors.New("smtp down")
			},
		}

		err := uc.ForgotPassword(context.Background(), "test@example.com")
		if !errors.Is(err, ErrDeliveryFailed) {
			t.Errorf("expected ErrDeliveryFailed, got %v", err)
		}
		if !cleared {
			t.Error("expected reset token to be rolled back after delivery failure")
		}
	})

	t.Run("store failure is propagated", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string, includeInactive bool) (*entity.User, error) {
				return testUser, nil
			},
			SetResetTokenFunc: func(ctx context.Context, id uint, digest string, expiresAt time.Time) error {
				return expectedErr
			},
		}
		uc, _, mailer := newTestUsecase(repo)

		err := uc.ForgotPassword(context.Background(), "test@example.com")
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
		if mailer.lastTo != "" {
			t.Error("no mail must be sent when the token could not be stored")
		}
	})
}

func TestAuthUsecase_ResetPassword(t *testing.T) {
	secret := "valid-reset-secret"
	digest := resettoken.Digest(secret)

	makeUser := func(expiry time.Time) *entity.User {
		d := digest
		e := expiry
		return &entity.User{
			ID:                     1,
			Email:                  "test@example.com",
			Password:               "hashed:oldpassword",
			Active:                 true,
			PasswordResetHash:      &d,
			PasswordResetExpiresAt: &e,
		}
	}

	t.Run("successful reset", func(t *testing.T) {
		var completedDigest, completedHash string
		repo := &mockUserRepository{
			FindByResetDigestFunc: func(ctx context.Context, d string) (*entity.User, error) {
				if d != digest {
					return nil, ErrUserNotFound
				}
				return makeUser(time.Now().Add(5 * time.Minute)), nil
			},
			CompleteResetFunc: func(ctx context.Context, id uint, d, passwordHash string, changedAt time.Time) error {
				completedDigest = d
				completedHash = passwordHash
				return nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		session, err := uc.ResetPassword(context.Background(), secret, "newpassword1", "newpassword1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if completedDigest != digest {
			t.Error("expected reset completion to be conditioned on the digest")
		}
		if completedHash != "hashed:newpassword1" {
			t.Errorf("expected new hash, got %q", completedHash)
		}
		if session.User.PasswordResetHash != nil {
			t.Error("expected reset fields to be cleared on the returned user")
		}
		if session.Token == "" {
			t.Error("expected a fresh session token")
		}
	})

	t.Run("unknown secret", func(t *testing.T) {
		uc, _, _ := newTestUsecase(&mockUserRepository{})

		_, err := uc.ResetPassword(context.Background(), "no-such-secret", "newpassword1", "newpassword1")
		if !errors.Is(err, ErrResetTokenInvalid) {
			t.Errorf("expected ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("expired secret", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByResetDigestFunc: func(ctx context.Context, d string) (*entity.User, error) {
				return makeUser(time.Now().Add(-time.Second)), nil
			},
			CompleteResetFunc: func(ctx context.Context, id uint, d, passwordHash string, changedAt time.Time) error {
				t.Error("reset must not complete with an expired secret")
				return nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.ResetPassword(context.Background(), secret, "newpassword1", "newpassword1")
		if !errors.Is(err, ErrResetTokenInvalid) {
			t.Errorf("expected ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("second use of the same secret fails", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByResetDigestFunc: func(ctx context.Context, d string) (*entity.User, error) {
				return makeUser(time.Now().Add(5 * time.Minute)), nil
			},
			CompleteResetFunc: func(ctx context.Context, id uint, d, passwordHash string, changedAt time.Time) error {
				// Conditional update matched no rows: the token was consumed
				return ErrResetTokenInvalid
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.ResetPassword(context.Background(), secret, "newpassword1", "newpassword1")
		if !errors.Is(err, ErrResetTokenInvalid) {
			t.Errorf("expected ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("password policy checked before lookup", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByResetDigestFunc: func(ctx context.Context, d string) (*entity.User, error) {
				t.Error("lookup must not happen for an invalid new password")
				return nil, ErrUserNotFound
			},
		}
		uc, _, _ := newTestUsecase(repo)

		_, err := uc.ResetPassword(context.Background(), secret, "short", "short")
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("expected ErrPasswordTooShort, got %v", err)
		}
	})
}

func TestAuthUsecase_Deactivate(t *testing.T) {
	t.Run("delegates to the repository", func(t *testing.T) {
		var deactivatedID uint
		repo := &mockUserRepository{
			DeactivateFunc: func(ctx context.Context, id uint) error {
				deactivatedID = id
				return nil
			},
		}
		uc, _, _ := newTestUsecase(repo)

		if err := uc.Deactivate(context.Background(), 42); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deactivatedID != 42 {
			t.Errorf("expected user 42 to be deactivated, got %d", deactivatedID)
		}
	})

	t.Run("repository failure is propagated", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockUserRepository{
			DeactivateFunc: func(ctx context.Context, id uint) error {
				return expectedErr
			},
		}
		uc, _, _ := newTestUsecase(repo)

		if err := uc.Deactivate(context.Background(), 42); !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}
