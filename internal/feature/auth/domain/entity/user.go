// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role is the closed set of authorization roles a user can hold.
// Free-form role strings are rejected at the model boundary via Valid.
type Role string

const (
	// RoleUser is the default role assigned at sign-up.
	RoleUser Role = "user"

	// RoleAdmin grants access to the administrative routes.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account in the system.
// It owns the credential material: the bcrypt password hash, the
// password-change timestamp and the (hashed) password-reset token.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown to other users.
	Name string `gorm:"size:255;not null"`

	// Email is the normalized (lowercased) address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This field must never hold plaintext and is never serialized outward.
	Password string `gorm:"size:255;not null"`

	// Role determines which restricted routes the user may access.
	Role Role `gorm:"size:16;not null;default:user"`

	// Active marks the account as usable. Deactivated accounts are kept
	// (soft delete) but excluded from default lookups and from logins.
	// Because of the default tag, GORM skips a false Active on Create;
	// deactivation must go through a column update, never a full-row save.
	Active bool `gorm:"not null;default:true"`

	// PasswordChangedAt is advanced atomically with every password
	// mutation. Tokens issued before this instant are rejected.
	PasswordChangedAt time.Time `gorm:"not null"`

	// PasswordResetHash is the SHA-256 hex digest of the last issued reset
	// secret. nil when no reset is pending. Set and cleared together with
	// PasswordResetExpiresAt.
	PasswordResetHash *string `gorm:"size:64;index"`

	// PasswordResetExpiresAt bounds the reset secret's validity window.
	PasswordResetExpiresAt *time.Time

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// PasswordChangedAfter reports whether the password was changed after the
// given instant. Both sides are truncated to whole seconds because JWT
// issued-at claims carry second resolution; a change in the same second as
// issuance does not invalidate the token.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	return u.PasswordChangedAt.Truncate(time.Second).After(t.Truncate(time.Second))
}
