package authz

import "messagely/internal/shared/apperr"

var (
	// ErrForbidden is returned when a valid identity lacks rights on the target.
	ErrForbidden = apperr.Forbidden("forbidden")

	// ErrUnauthenticated is returned when no identity is present.
	ErrUnauthenticated = apperr.Unauthorized("authentication required")
)

// CanListUsers allows any authenticated identity.
func CanListUsers(id Identity) error {
	if id.Username == "" {
		return ErrUnauthenticated
	}
	return nil
}

// CanViewUserDetail allows only the user themself.
func CanViewUserDetail(id Identity, username string) error {
	return self(id, username)
}

// CanListMessagesOf allows only the user themself to list the messages
// sent to or from username.
func CanListMessagesOf(id Identity, username string) error {
	return self(id, username)
}

// CanReadMessage allows the sender and the recipient.
func CanReadMessage(id Identity, fromUsername, toUsername string) error {
	if id.Username == "" {
		return ErrUnauthenticated
	}
	if id.Username != fromUsername && id.Username != toUsername {
		return ErrForbidden
	}
	return nil
}

// CanMarkRead allows the recipient only.
func CanMarkRead(id Identity, toUsername string) error {
	return self(id, toUsername)
}

func self(id Identity, username string) error {
	if id.Username == "" {
		return ErrUnauthenticated
	}
	if id.Username != username {
		return ErrForbidden
	}
	return nil
}
