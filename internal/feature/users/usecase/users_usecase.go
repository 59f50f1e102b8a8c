// Package usecase implements the user directory and per-user message listings.
package usecase

import (
	"context"
	"log/slog"

	authentity "messagely/internal/feature/auth/domain/entity"
	msgentity "messagely/internal/feature/messages/domain/entity"
	"messagely/internal/shared/apperr"
	"messagely/internal/shared/authz"
)

// UserRepository reads user profiles.
type UserRepository interface {
	List(ctx context.Context) ([]authentity.User, error)
	FindByUsername(ctx context.Context, username string) (*authentity.User, error)
}

// MessageLister reads the messages a user received or sent.
type MessageLister interface {
	ListTo(ctx context.Context, username string) ([]*msgentity.Message, error)
	ListFrom(ctx context.Context, username string) ([]*msgentity.Message, error)
}

type usersUsecase struct {
	users    UserRepository
	messages MessageLister
}

// NewUsersUsecase creates a new usersUsecase.
func NewUsersUsecase(users UserRepository, messages MessageLister) *usersUsecase {
	return &usersUsecase{users: users, messages: messages}
}

// List returns every user. Any authenticated caller may list.
func (u *usersUsecase) List(ctx context.Context) ([]authentity.User, error) {
	caller, _ := authz.IdentityFrom(ctx)
	if err := authz.CanListUsers(caller); err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list users", err)
	}
	return users, nil
}

// Get returns the caller's own full profile.
// The permission check comes first, so other usernames are never looked up.
func (u *usersUsecase) Get(ctx context.Context, username string) (*authentity.User, error) {
	if err := authorize(ctx, username, authz.CanViewUserDetail); err != nil {
		return nil, err
	}
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}
	return user, nil
}

// MessagesTo returns the messages the caller received, with sender profiles.
func (u *usersUsecase) MessagesTo(ctx context.Context, username string) ([]*msgentity.Message, error) {
	if err := authorize(ctx, username, authz.CanListMessagesOf); err != nil {
		return nil, err
	}
	messages, err := u.messages.ListTo(ctx, username)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list messages", err)
	}
	return messages, nil
}

// MessagesFrom returns the messages the caller sent, with recipient profiles.
func (u *usersUsecase) MessagesFrom(ctx context.Context, username string) ([]*msgentity.Message, error) {
	if err := authorize(ctx, username, authz.CanListMessagesOf); err != nil {
		return nil, err
	}
	messages, err := u.messages.ListFrom(ctx, username)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list messages", err)
	}
	return messages, nil
}

// authorize applies a per-user policy to the caller in ctx.
func authorize(ctx context.Context, username string, policy func(authz.Identity, string) error) error {
	caller, _ := authz.IdentityFrom(ctx)
	if err := policy(caller, username); err != nil {
		if apperr.CodeOf(err) == apperr.CodePermissionDenied {
			slog.Warn("user access denied", "target", username, "username", caller.Username)
		}
		return err
	}
	return nil
}
