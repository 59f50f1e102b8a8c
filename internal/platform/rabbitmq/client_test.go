package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messagely/internal/messaging/payloads"
)

// fakeChannel records published messages.
type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestClient_PublishMessageSent(t *testing.T) {
	sentAt := time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)

	t.Run("publishes JSON to the queue", func(t *testing.T) {
		ch := &fakeChannel{}
		c := &Client{channel: ch, queue: "message_events"}

		err := c.PublishMessageSent(context.Background(), payloads.MessageSentPayload{
			MessageID:    7,
			FromUsername: "alice",
			ToUsername:   "bob",
			SentAt:       sentAt,
		})
		require.NoError(t, err)
		require.Len(t, ch.published, 1)

		msg := ch.published[0]
		assert.Equal(t, "message_events", ch.keys[0])
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, payloads.MessageSentEvent, msg.Type)

		var got payloads.MessageSentPayload
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, payloads.MessageSentEvent, got.Event)
		assert.Equal(t, int64(7), got.MessageID)
		assert.Equal(t, "alice", got.FromUsername)
		assert.Equal(t, "bob", got.ToUsername)
		assert.True(t, sentAt.Equal(got.SentAt))
	})

	t.Run("publish failure", func(t *testing.T) {
		c := &Client{channel: &fakeChannel{err: errors.New("channel closed")}, queue: "message_events"}

		err := c.PublishMessageSent(context.Background(), payloads.MessageSentPayload{MessageID: 1})

		assert.ErrorContains(t, err, "failed to publish a message")
	})
}

func TestClient_Close(t *testing.T) {
	ch := &fakeChannel{}
	c := &Client{channel: ch}

	c.Close()

	assert.True(t, ch.closed)
}
