package services

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when a registration collides with an
	// existing account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrTokenExpired is returned for a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for any token that fails signature or
	// structural checks.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrUserGone is returned when a valid token references a user that
	// no longer exists.
	ErrUserGone = errors.New("user not found")

	// ErrInvalidPrice rejects product writes with a non-positive price.
	ErrInvalidPrice = errors.New("price must be a positive number")
)
