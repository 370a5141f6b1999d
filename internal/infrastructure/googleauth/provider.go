package googleauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/mfund-labs/mf-backend/internal/application"
)

// Scopes requested on the consent screen
var Scopes = []string{"openid", "email", "profile"}

// ValidateFunc checks an ID token signature, expiry and audience.
// idtoken.Validate in production.
type ValidateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Provider is the Google OAuth 2.0 / OpenID Connect client.
type Provider struct {
	Config     *oauth2.Config
	Validate   ValidateFunc
	HTTPClient *http.Client // nil uses http.DefaultClient
}

// NewProvider builds a client for the given web application credentials.
// Missing credentials are reported lazily so the rest of the API still boots.
func NewProvider(clientID, clientSecret, redirectURL string) *Provider {
	return &Provider{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
			Endpoint:     google.Endpoint,
		},
		Validate: idtoken.Validate,
	}
}

func (p *Provider) configured() bool {
	return p.Config.ClientID != "" && p.Config.ClientSecret != ""
}

// AuthCodeURL requests offline access and forces the consent prompt so a
// refresh token is always granted.
func (p *Provider) AuthCodeURL(state string) (string, error) {
	if !p.configured() {
		return "", application.ErrProviderNotConfigured
	}
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")), nil
}

// ExchangeCode redeems the one-time code at the token endpoint.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (*application.ProviderTokens, error) {
	if !p.configured() {
		return nil, application.ErrProviderNotConfigured
	}
	if p.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.HTTPClient)
	}
	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.ErrorCode == "invalid_grant" {
			return nil, errors.Join(application.ErrProviderRejectedCode, err)
		}
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	idToken, _ := tok.Extra("id_token").(string)
	return &application.ProviderTokens{AccessToken: tok.AccessToken, IDToken: idToken}, nil
}

// VerifyIDToken validates the token against Google's keys with our client id
// as audience, then lifts the profile claims.
func (p *Provider) VerifyIDToken(ctx context.Context, idToken string) (*application.IdentityAssertion, error) {
	payload, err := p.Validate(ctx, idToken, p.Config.ClientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}
	return &application.IdentityAssertion{
		Subject: payload.Subject,
		Email:   claim(payload, "email"),
		Name:    claim(payload, "name"),
		Picture: claim(payload, "picture"),
	}, nil
}

func claim(p *idtoken.Payload, key string) string {
	s, _ := p.Claims[key].(string)
	return s
}
