package repository

import (
	"context"
	"errors"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// GoogleProfile is the set of fields a Google login refreshes on a user.
// Empty Name or Picture leave the stored value untouched.
type GoogleProfile struct {
	GoogleID string
	Name     string
	Picture  string
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// FindByEmailOrGoogleID matches on either field so a locally registered
	// account is linked on its first Google login.
	FindByEmailOrGoogleID(ctx context.Context, email, googleID string) (*entity.User, error)
	// ApplyGoogleProfile updates the user and returns the post-update document.
	ApplyGoogleProfile(ctx context.Context, id string, p GoogleProfile) (*entity.User, error)
	// Insert stores u and returns the generated id.
	Insert(ctx context.Context, u *entity.User) (string, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// RefreshTokenRepository persists issued refresh tokens.
type RefreshTokenRepository interface {
	Insert(ctx context.Context, t *entity.RefreshToken) error
}
