// Package dto はmessagesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"messagely/internal/feature/messages/domain/entity"
)

// CreateMessageReq is the body of POST /messages. The sender is never part of it.
type CreateMessageReq struct {
	ToUsername string `json:"to_username" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// Profile is a correspondent's public profile.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// MessageDetail is the body of GET /messages/:id.
type MessageDetail struct {
	ID       int64      `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser *Profile   `json:"from_user"`
	ToUser   *Profile   `json:"to_user"`
}

// MessageCreated is the body of a 201 from POST /messages.
type MessageCreated struct {
	ID           int64      `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// MessageRead is the body of POST /messages/:id/read.
type MessageRead struct {
	ID     int64      `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

// NewProfile converts a domain profile, keeping nil as nil.
func NewProfile(p *entity.Profile) *Profile {
	if p == nil {
		return nil
	}
	return &Profile{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
	}
}

func NewMessageDetail(m *entity.Message) MessageDetail {
	return MessageDetail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: NewProfile(m.From),
		ToUser:   NewProfile(m.To),
	}
}

func NewMessageCreated(m *entity.Message) MessageCreated {
	return MessageCreated{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
		ReadAt:       m.ReadAt,
	}
}
