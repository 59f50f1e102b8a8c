// Package dto defines the response bodies of the users endpoints.
package dto

import (
	"time"

	authentity "messagely/internal/feature/auth/domain/entity"
	msgentity "messagely/internal/feature/messages/domain/entity"
	msgdto "messagely/internal/feature/messages/transport/http/dto"
)

// UserSummary is one entry of GET /users.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UserDetail is the body of GET /users/:username.
type UserDetail struct {
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	JoinedAt    time.Time `json:"joined_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// ReceivedMessage is one entry of GET /users/:username/to.
type ReceivedMessage struct {
	ID       int64           `json:"id"`
	Body     string          `json:"body"`
	SentAt   time.Time       `json:"sent_at"`
	ReadAt   *time.Time      `json:"read_at"`
	FromUser *msgdto.Profile `json:"from_user"`
}

// SentMessage is one entry of GET /users/:username/from.
type SentMessage struct {
	ID     int64           `json:"id"`
	Body   string          `json:"body"`
	SentAt time.Time       `json:"sent_at"`
	ReadAt *time.Time      `json:"read_at"`
	ToUser *msgdto.Profile `json:"to_user"`
}

func NewUserSummaries(users []authentity.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
		})
	}
	return out
}

func NewUserDetail(u *authentity.User) UserDetail {
	return UserDetail{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		JoinedAt:    u.JoinedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func NewReceivedMessages(messages []*msgentity.Message) []ReceivedMessage {
	out := make([]ReceivedMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, ReceivedMessage{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: msgdto.NewProfile(m.From),
		})
	}
	return out
}

func NewSentMessages(messages []*msgentity.Message) []SentMessage {
	out := make([]SentMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, SentMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			ToUser: msgdto.NewProfile(m.To),
		})
	}
	return out
}
