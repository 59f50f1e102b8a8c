// Package usecase implements the business logic for the messages feature.
package usecase

import "messagely/internal/shared/apperr"

var (
	// ErrMessageNotFound is returned when no message has the requested id.
	ErrMessageNotFound = apperr.NotFound("message not found")

	// ErrRecipientNotFound is returned when the recipient username is not registered.
	ErrRecipientNotFound = apperr.NotFound("recipient not found")

	// ErrRecipientRequired is returned when a message has no recipient.
	ErrRecipientRequired = apperr.InvalidArg("to_username is required")

	// ErrBodyRequired is returned when a message body is empty.
	ErrBodyRequired = apperr.InvalidArg("body is required")
)
