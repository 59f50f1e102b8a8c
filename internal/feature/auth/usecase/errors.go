// Package usecase implements the business logic for the auth feature.
package usecase

import "messagely/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by username.
	ErrUserNotFound = apperr.NotFound("user not found")

	// ErrUsernameTaken is returned when attempting to create a user with a username that already exists.
	ErrUsernameTaken = apperr.AlreadyExists("username already exists")

	// ErrInvalidCredentials is returned for an unknown username and for a wrong password alike,
	// so callers cannot tell which one it was.
	ErrInvalidCredentials = apperr.Unauthorized("invalid username or password")

	// ErrUsernameRequired is returned when registering without a username.
	ErrUsernameRequired = apperr.InvalidArg("username is required")

	// ErrPasswordRequired is returned when registering without a password.
	ErrPasswordRequired = apperr.InvalidArg("password is required")

	// ErrPasswordTooLong is returned when the password exceeds what bcrypt can hash.
	ErrPasswordTooLong = apperr.InvalidArg("password is too long")
)
