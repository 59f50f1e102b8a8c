// Package adapters はmessagesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	authentity "messagely/internal/feature/auth/domain/entity"
	"messagely/internal/feature/messages/domain/entity"
)

// MessageModel is the GORM row for the messages table.
// FromUser and ToUser reference users.username.
type MessageModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	FromUsername string     `gorm:"size:64;not null;index"`
	ToUsername   string     `gorm:"size:64;not null;index"`
	Body         string     `gorm:"type:text;not null"`
	SentAt       time.Time  `gorm:"not null"`
	ReadAt       *time.Time // NULL until read

	FromUser authentity.User `gorm:"foreignKey:FromUsername;references:Username;constraint:OnDelete:CASCADE"`
	ToUser   authentity.User `gorm:"foreignKey:ToUsername;references:Username;constraint:OnDelete:CASCADE"`
}

// TableName はGORMが使用するテーブル名を返します。
func (MessageModel) TableName() string { return "messages" }

func newMessageModel(m *entity.Message) *MessageModel {
	return &MessageModel{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
		ReadAt:       m.ReadAt,
	}
}

// ToEntity converts the row to a domain message. Correspondent profiles are
// attached only when they were preloaded.
func (m *MessageModel) ToEntity() *entity.Message {
	msg := &entity.Message{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
		ReadAt:       m.ReadAt,
	}
	if m.FromUser.Username != "" {
		msg.From = toProfile(&m.FromUser)
	}
	if m.ToUser.Username != "" {
		msg.To = toProfile(&m.ToUser)
	}
	return msg
}

func toProfile(u *authentity.User) *entity.Profile {
	return &entity.Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
