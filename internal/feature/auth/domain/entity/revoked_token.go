package entity

import "time"

// RevokedToken is a deny-list entry for a bearer token that was logged out
// before its expiry.
type RevokedToken struct {
	ID        string    `gorm:"primaryKey;size:64"` // Token id (jti claim)
	Username  string    `gorm:"size:64;index"`
	RevokedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"` // Entry can be dropped after this time
}

// IsExpired returns true once the revoked token would have expired anyway.
func (r *RevokedToken) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
