// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains the credential hash and the profile shown to other users.
type User struct {
	// Username is the unique, immutable identifier for the user.
	Username string `gorm:"primaryKey;size:64"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It never leaves the credential store boundary.
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`

	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:32;not null"`

	// JoinedAt is set once at registration.
	JoinedAt time.Time `gorm:"not null"`

	// LastLoginAt is refreshed on every successful authentication.
	LastLoginAt time.Time `gorm:"not null"`
}
