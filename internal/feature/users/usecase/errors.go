package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the given ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when a profile update would collide
	// with another account's email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidRole is returned when an admin update carries a role outside
	// the closed enumeration.
	ErrInvalidRole = errors.New("invalid role")
)
