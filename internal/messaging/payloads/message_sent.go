package payloads

import "time"

// MessageSentEvent is the routing key carried by every MessageSentPayload.
const MessageSentEvent = "message.sent"

// MessageSentPayload announces a newly stored message to downstream consumers
// (for example an SMS notifier). The body is left out on purpose.
type MessageSentPayload struct {
	Event        string    `json:"event"`
	MessageID    int64     `json:"message_id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	SentAt       time.Time `json:"sent_at"`
}
