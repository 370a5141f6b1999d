package application

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
	repo "github.com/mfund-labs/mf-backend/internal/domain/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmailOrGoogleID(ctx context.Context, email, googleID string) (*entity.User, error) {
	args := m.Called(ctx, email, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ApplyGoogleProfile(ctx context.Context, id string, p repo.GoogleProfile) (*entity.User, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Insert(ctx context.Context, u *entity.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Insert(ctx context.Context, t *entity.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AuthCodeURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) ExchangeCode(ctx context.Context, code string) (*ProviderTokens, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProviderTokens), args.Error(1)
}

func (m *MockIdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*IdentityAssertion, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IdentityAssertion), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateAccessToken(userID, email, role string) (string, time.Time, error) {
	args := m.Called(userID, email, role)
	return args.String(0), time.Time{}, args.Error(1)
}

func (m *MockTokenIssuer) GenerateRefreshToken(userID string) (string, time.Time, error) {
	args := m.Called(userID)
	return args.String(0), time.Time{}, args.Error(1)
}

// recordingNotifier keeps every notice; the flow never waits on it.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []WelcomeNotice
}

func (n *recordingNotifier) NotifyWelcomeAsync(_ context.Context, notice WelcomeNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) sent() []WelcomeNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]WelcomeNotice(nil), n.notices...)
}

type MockUserIndexer struct {
	mock.Mock
}

func (m *MockUserIndexer) IndexUser(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
