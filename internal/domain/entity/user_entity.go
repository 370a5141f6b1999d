package entity

import (
	"time"
)

// Provider tags how a user first proved their identity
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// Role is the authorization tier carried in access tokens
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// KYCStatus tracks know-your-customer review for fund purchases
type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCVerified KYCStatus = "VERIFIED"
	KYCRejected KYCStatus = "REJECTED"
)

// User is the aggregate root for user domain
// Password always holds a bcrypt hash, also for Google accounts where it is
// the hash of a random secret nobody knows.
type User struct {
	ID             string
	GoogleID       string
	Email          string
	Name           string
	ProfilePicture string
	Provider       Provider
	Password       string
	Role           Role
	IsVerified     bool
	KYCStatus      KYCStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Summary is the minimal projection handed to the frontend after login
type Summary struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Role           Role   `json:"role"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
	}
}
