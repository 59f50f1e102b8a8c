package usecase

import (
	"context"
	"log/slog"
	"time"

	authentity "messagely/internal/feature/auth/domain/entity"
	"messagely/internal/feature/messages/domain/entity"
	"messagely/internal/messaging/payloads"
	"messagely/internal/shared/apperr"
	"messagely/internal/shared/authz"
)

// MessageRepository abstracts message storage.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MessageRepository interface {
	// Create stores m and sets m.ID.
	Create(ctx context.Context, m *entity.Message) error
	// FindByID returns ErrMessageNotFound if no message has id.
	FindByID(ctx context.Context, id int64) (*entity.Message, error)
	// MarkRead sets read_at once and returns the stored value.
	MarkRead(ctx context.Context, id int64, at time.Time) (time.Time, error)
}

// UserFinder looks up the recipient of a new message.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*authentity.User, error)
}

// EventPublisher announces stored messages.
type EventPublisher interface {
	PublishMessageSent(ctx context.Context, payload payloads.MessageSentPayload) error
}

// messagesUsecase implements message detail, creation and mark-as-read.
type messagesUsecase struct {
	messages MessageRepository
	users    UserFinder
	events   EventPublisher
	now      func() time.Time
	// dispatch runs event publishing outside the request.
	dispatch func(func())
}

// storageNow matches the microsecond precision of the timestamp columns, so a
// value returned before and after a round trip through the store is identical.
func storageNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewMessagesUsecase creates a new messagesUsecase. events may be nil.
func NewMessagesUsecase(messages MessageRepository, users UserFinder, events EventPublisher) *messagesUsecase {
	return &messagesUsecase{
		messages: messages,
		users:    users,
		events:   events,
		now:      storageNow,
		dispatch: func(f func()) { go f() },
	}
}

// Get returns the message if the caller sent or received it.
// A missing message is reported before the participant check.
func (u *messagesUsecase) Get(ctx context.Context, id int64) (*entity.Message, error) {
	caller, ok := authz.IdentityFrom(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	msg, err := u.findMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadMessage(caller, msg.FromUsername, msg.ToUsername); err != nil {
		slog.Warn("message access denied", "message_id", id, "username", caller.Username)
		return nil, err
	}
	return msg, nil
}

// Create stores a message from the caller to toUsername.
func (u *messagesUsecase) Create(ctx context.Context, toUsername, body string) (*entity.Message, error) {
	caller, ok := authz.IdentityFrom(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	if toUsername == "" {
		return nil, ErrRecipientRequired
	}
	if body == "" {
		return nil, ErrBodyRequired
	}

	if _, err := u.users.FindByUsername(ctx, toUsername); err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, ErrRecipientNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load recipient", err)
	}

	msg := &entity.Message{
		FromUsername: caller.Username,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       u.now(),
	}
	if err := u.messages.Create(ctx, msg); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to store message", err)
	}

	u.publishSent(ctx, msg)
	return msg, nil
}

// MarkRead records when the recipient read the message and returns that time.
// Repeated calls return the first read time.
func (u *messagesUsecase) MarkRead(ctx context.Context, id int64) (*entity.Message, error) {
	caller, ok := authz.IdentityFrom(ctx)
	if !ok {
		return nil, authz.ErrUnauthenticated
	}
	msg, err := u.findMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMarkRead(caller, msg.ToUsername); err != nil {
		slog.Warn("mark read denied", "message_id", id, "username", caller.Username)
		return nil, err
	}
	if msg.IsRead() {
		return msg, nil
	}

	readAt, err := u.messages.MarkRead(ctx, id, u.now())
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to mark message read", err)
	}
	msg.ReadAt = &readAt
	return msg, nil
}

func (u *messagesUsecase) findMessage(ctx context.Context, id int64) (*entity.Message, error) {
	msg, err := u.messages.FindByID(ctx, id)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load message", err)
	}
	return msg, nil
}

// publishSent is best effort. The message is already stored, so a slow broker
// must not delay the response and a client disconnect must not cancel the publish.
func (u *messagesUsecase) publishSent(ctx context.Context, msg *entity.Message) {
	if u.events == nil {
		return
	}
	payload := payloads.MessageSentPayload{
		MessageID:    msg.ID,
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		SentAt:       msg.SentAt,
	}
	ctx = context.WithoutCancel(ctx)
	u.dispatch(func() {
		if err := u.events.PublishMessageSent(ctx, payload); err != nil {
			slog.Warn("failed to publish message event", "error", err, "message_id", payload.MessageID)
		}
	})
}
