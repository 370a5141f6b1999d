package application

import (
	"context"
	"time"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
)

// ProviderTokens is the subset of the code-exchange response we consume
type ProviderTokens struct {
	AccessToken string
	IDToken     string
}

// IdentityAssertion holds verified ID token claims. It lives for one
// callback and is never stored.
type IdentityAssertion struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IdentityProvider is the OAuth/OpenID client for Google.
type IdentityProvider interface {
	AuthCodeURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*ProviderTokens, error)
	VerifyIDToken(ctx context.Context, idToken string) (*IdentityAssertion, error)
}

// TokenIssuer mints the session tokens handed to the frontend.
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, time.Time, error)
	GenerateRefreshToken(userID string) (string, time.Time, error)
}

// WelcomeNotice is the payload of the post-login welcome email.
type WelcomeNotice struct {
	Email     string
	Name      string
	LoginType string
	IsNewUser bool
}

// Notifier dispatches notifications without blocking the caller. Failures
// are the implementation's to log; they never reach the login flow.
type Notifier interface {
	NotifyWelcomeAsync(ctx context.Context, n WelcomeNotice)
}

// UserIndexer mirrors user profiles into the search directory.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
}
