// Package entity defines the domain entities for the messages feature.
package entity

import "time"

// Profile is the public part of a user shown next to a message.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

// Message is a private note from one user to another.
// Its sender and recipient never change once stored.
type Message struct {
	ID           int64
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time

	// ReadAt is nil until the recipient marks the message read. It is set at most once.
	ReadAt *time.Time

	// From and To are filled only by queries that load the correspondents.
	From *Profile
	To   *Profile
}

// IsRead reports whether the recipient has marked the message read.
func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}
