package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is the generic authentication failure. The same
	// value covers unknown email and wrong password so that responses do not
	// reveal which field was wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrPasswordMismatch is returned when a password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrPasswordTooShort is returned when a new password fails the length
	// policy. Transport-level binding normally catches this first; the check
	// here is the authoritative one.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrWrongPassword is returned by UpdatePassword when the current
	// password does not verify. The caller is already authenticated, so a
	// specific message leaks nothing.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrResetTokenInvalid covers a reset secret that is unknown, expired or
	// already used. The three cases are indistinguishable to the caller.
	ErrResetTokenInvalid = errors.New("token is invalid or has expired")

	// ErrDeliveryFailed is returned when the reset secret could not be
	// dispatched. Any persisted reset state has been rolled back.
	ErrDeliveryFailed = errors.New("failed to send the reset token")
)
