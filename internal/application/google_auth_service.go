package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
	repo "github.com/mfund-labs/mf-backend/internal/domain/repository"
	"github.com/mfund-labs/mf-backend/pkg/helpers"
)

// RefreshTokenLifetime is the expiry written on stored refresh tokens.
const RefreshTokenLifetime = 7 * 24 * time.Hour

const successPath = "/auth/success"

// GoogleAuthService runs the Google sign-in: code exchange, identity
// verification, user upsert, token issuance and the success redirect.
type GoogleAuthService struct {
	Users         repo.UserRepository
	RefreshTokens repo.RefreshTokenRepository
	Provider      IdentityProvider
	Tokens        TokenIssuer
	Notifier      Notifier
	Indexer       UserIndexer // optional
	Logger        *logrus.Logger
	FrontendURL   string

	now        func() time.Time
	hashSecret func() (string, error)
}

func NewGoogleAuthService(users repo.UserRepository, refreshTokens repo.RefreshTokenRepository, provider IdentityProvider, tokens TokenIssuer, notifier Notifier, indexer UserIndexer, logger *logrus.Logger, frontendURL string) *GoogleAuthService {
	return &GoogleAuthService{
		Users:         users,
		RefreshTokens: refreshTokens,
		Provider:      provider,
		Tokens:        tokens,
		Notifier:      notifier,
		Indexer:       indexer,
		Logger:        logger,
		FrontendURL:   frontendURL,
		now:           time.Now,
		hashSecret:    helpers.HashRandomSecret,
	}
}

// LoginResult is what a successful callback hands back to the HTTP layer.
type LoginResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	IsNewUser    bool
	RedirectURL  string
}

// AuthURL returns the consent screen URL, carrying state when given.
func (s *GoogleAuthService) AuthURL(ctx context.Context, state string) (string, error) {
	u, err := s.Provider.AuthCodeURL(state)
	if err != nil {
		helpers.LoggerFrom(ctx, s.Logger).WithError(err).Error("generate google oauth url failed")
		return "", err
	}
	helpers.LoggerFrom(ctx, s.Logger).WithField("state_present", state != "").Debug("redirecting to google consent screen")
	return u, nil
}

// HandleCallback converts a one-time authorization code into a session.
// It runs each step once; the first failure ends the request.
func (s *GoogleAuthService) HandleCallback(ctx context.Context, code, state string) (*LoginResult, error) {
	log := helpers.LoggerFrom(ctx, s.Logger)
	res, err := s.handleCallback(ctx, log, code, state)
	if err != nil {
		kind := KindOf(err)
		countFailure(kind)
		log.WithError(CauseOf(err)).WithField("kind", kind.Error()).Error("google oauth callback failed")
		return nil, err
	}
	return res, nil
}

func (s *GoogleAuthService) handleCallback(ctx context.Context, log *logrus.Entry, code, state string) (*LoginResult, error) {
	s.step(log, stepStarted, logrus.Fields{"state_present": state != ""})
	if strings.TrimSpace(code) == "" {
		return nil, fail(ErrMissingCode, nil)
	}

	tokens, err := s.Provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fail(ErrTokenExchange, err)
	}
	s.step(log, stepCodeExchanged, nil)
	if tokens.IDToken == "" {
		return nil, fail(ErrMissingIdentityToken, nil)
	}

	assertion, err := s.Provider.VerifyIDToken(ctx, tokens.IDToken)
	if err != nil {
		return nil, fail(ErrInvalidIdentityToken, err)
	}
	s.step(log, stepIdentityVerified, logrus.Fields{"subject": assertion.Subject})
	if assertion.Email == "" {
		return nil, fail(ErrIncompleteProfile, nil)
	}
	log = log.WithField("email", assertion.Email)
	s.step(log, stepEmailPresent, nil)

	user, isNew, err := s.resolveUser(ctx, log, assertion)
	if err != nil {
		return nil, err
	}
	log = log.WithField("user_id", user.ID)
	s.step(log, stepUserResolved, logrus.Fields{"new_user": isNew})
	s.index(ctx, log, user)

	access, _, err := s.Tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fail(ErrUnknown, err)
	}
	refresh, _, err := s.Tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fail(ErrUnknown, err)
	}
	s.step(log, stepTokensIssued, nil)

	now := s.now()
	if err := s.RefreshTokens.Insert(ctx, &entity.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: now.Add(RefreshTokenLifetime),
		CreatedAt: now,
	}); err != nil {
		return nil, fail(ErrSessionPersistence, err)
	}
	s.step(log, stepSessionPersisted, nil)

	s.Notifier.NotifyWelcomeAsync(ctx, WelcomeNotice{
		Email:     user.Email,
		Name:      user.Name,
		LoginType: string(entity.ProviderGoogle),
		IsNewUser: isNew,
	})

	redirect, err := SuccessRedirectURL(s.FrontendURL, access, refresh, user.Summary(), state)
	if err != nil {
		return nil, fail(ErrUnknown, err)
	}
	s.step(log, stepDone, nil)

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		IsNewUser:    isNew,
		RedirectURL:  redirect,
	}, nil
}

// resolveUser links the Google identity to an existing account (matched by
// email or Google id) or creates one. It is a read-modify-write; the unique
// email index catches the concurrent first-login race, which is then
// retried once as an update.
func (s *GoogleAuthService) resolveUser(ctx context.Context, log *logrus.Entry, a *IdentityAssertion) (*entity.User, bool, error) {
	existing, err := s.Users.FindByEmailOrGoogleID(ctx, a.Email, a.Subject)
	switch {
	case err == nil:
		log.Debug("found existing user, updating google info")
		u, err := s.updateExisting(ctx, existing, a)
		return u, false, err
	case !errors.Is(err, repo.ErrNotFound):
		return nil, false, fail(ErrUnknown, err)
	}

	log.Debug("creating new user with google account")
	u, err := s.createUser(ctx, a)
	if errors.Is(err, repo.ErrDuplicate) {
		log.Warn("concurrent first login detected, retrying as existing user")
		existing, ferr := s.Users.FindByEmailOrGoogleID(ctx, a.Email, a.Subject)
		if ferr != nil {
			return nil, false, fail(ErrUserCreationFailed, err)
		}
		u, err := s.updateExisting(ctx, existing, a)
		return u, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *GoogleAuthService) updateExisting(ctx context.Context, existing *entity.User, a *IdentityAssertion) (*entity.User, error) {
	u, err := s.Users.ApplyGoogleProfile(ctx, existing.ID, repo.GoogleProfile{
		GoogleID: a.Subject,
		Name:     a.Name,
		Picture:  a.Picture,
	})
	if err != nil {
		return nil, fail(ErrUserUpdateFailed, err)
	}
	return u, nil
}

// createUser returns repo.ErrDuplicate unwrapped so resolveUser can retry.
func (s *GoogleAuthService) createUser(ctx context.Context, a *IdentityAssertion) (*entity.User, error) {
	hash, err := s.hashSecret()
	if err != nil {
		return nil, fail(ErrUserCreationFailed, err)
	}
	name := a.Name
	if name == "" {
		name = strings.SplitN(a.Email, "@", 2)[0]
	}
	now := s.now()
	id, err := s.Users.Insert(ctx, &entity.User{
		GoogleID:       a.Subject,
		Email:          a.Email,
		Name:           name,
		ProfilePicture: a.Picture,
		Provider:       entity.ProviderGoogle,
		Password:       hash,
		Role:           entity.RoleUser,
		IsVerified:     true,
		KYCStatus:      entity.KYCPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, err
	}
	if err != nil {
		return nil, fail(ErrUserCreationFailed, err)
	}
	// Re-read so callers see the stored shape, defaults included.
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fail(ErrUserCreationFailed, err)
	}
	return u, nil
}

func (s *GoogleAuthService) index(ctx context.Context, log *logrus.Entry, u *entity.User) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexUser(ctx, u); err != nil {
		log.WithError(err).Warn("user directory index failed")
	}
}

func (s *GoogleAuthService) step(log *logrus.Entry, step string, fields logrus.Fields) {
	countStep(step)
	log.WithFields(fields).WithField("step", step).Info("google oauth step")
}

// SuccessRedirectURL builds the frontend success URL. Tokens travel in the
// query string because the frontend reads them from there; state is echoed
// only when the login was started with one.
func SuccessRedirectURL(frontendURL, accessToken, refreshToken string, user entity.Summary, state string) (string, error) {
	b, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(frontendURL, "/"))
	sb.WriteString(successPath)
	sb.WriteString("?accessToken=")
	sb.WriteString(encodeURIComponent(accessToken))
	sb.WriteString("&refreshToken=")
	sb.WriteString(encodeURIComponent(refreshToken))
	sb.WriteString("&user=")
	sb.WriteString(encodeURIComponent(string(b)))
	if state != "" {
		sb.WriteString("&state=")
		sb.WriteString(encodeURIComponent(state))
	}
	return sb.String(), nil
}

// uriComponentUnescapes undoes what url.QueryEscape escapes beyond the
// browser's encodeURIComponent.
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent matches the browser function: spaces become %20 and
// !'()* stay literal.
func encodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}
