package entity

import "time"

// RefreshToken is a persisted bearer credential. Several may be live for the
// same user; expiry is enforced by whoever redeems it.
type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
