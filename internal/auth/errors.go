package auth

import "errors"

var (
	// ErrUsernameEmpty is returned when registering without a username.
	ErrUsernameEmpty = errors.New("username is required")

	// ErrPasswordEmpty is returned when registering without a password.
	ErrPasswordEmpty = errors.New("password is required")

	// ErrUserExists is returned when the username is already taken.
	ErrUserExists = errors.New("user already registered")

	// ErrUserNotFound is returned when no user has the given username or id.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")
)
