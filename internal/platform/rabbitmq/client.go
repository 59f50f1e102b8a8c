// Package rabbitmq publishes domain events to a RabbitMQ queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"messagely/internal/config"
	"messagely/internal/messaging/payloads"
)

// publishTimeout bounds a single publish.
const publishTimeout = 5 * time.Second

// channel is the part of *amqp.Channel the client uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Client publishes events to a single durable queue.
type Client struct {
	conn    *amqp.Connection
	channel channel
	queue   string
}

// NewClient connects, opens a channel and declares the durable event queue.
func NewClient(cfg config.RabbitMQ) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// キューが存在しない場合のみ作成される（冪等）
	q, err := ch.QueueDeclare(
		cfg.QueueName, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	slog.Info("RabbitMQ queue declared", "queue", q.Name, "messages", q.Messages)

	return &Client{conn: conn, channel: ch, queue: q.Name}, nil
}

// Close closes the channel and then the connection.
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			slog.Warn("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			slog.Warn("error closing RabbitMQ connection", "error", err)
		}
	}
}

// PublishMessageSent publishes payload as JSON to the event queue.
func (c *Client) PublishMessageSent(ctx context.Context, payload payloads.MessageSentPayload) error {
	payload.Event = payloads.MessageSentEvent
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",      // exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         payloads.MessageSentEvent,
			Timestamp:    payload.SentAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	slog.Debug("event published", "queue", c.queue, "event", payloads.MessageSentEvent, "message_id", payload.MessageID)
	return nil
}
