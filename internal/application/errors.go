package application

import (
	"errors"
)

// Callback failure kinds. Every one of them ends the request; the code is
// single use so nothing is retried.
var (
	ErrMissingCode          = errors.New("missing code in callback")
	ErrTokenExchange        = errors.New("failed to exchange authorization code")
	ErrMissingIdentityToken = errors.New("no id_token returned from Google")
	ErrInvalidIdentityToken = errors.New("invalid id_token")
	ErrIncompleteProfile    = errors.New("google profile missing email")
	ErrUserUpdateFailed     = errors.New("failed to update user")
	ErrUserCreationFailed   = errors.New("failed to create user")
	ErrSessionPersistence   = errors.New("failed to persist refresh token")
	ErrUnknown              = errors.New("authentication failed")
)

var (
	// ErrProviderRejectedCode marks exchange failures where Google refused the
	// code itself (expired, reused or forged), as opposed to transport errors.
	ErrProviderRejectedCode = errors.New("authorization code rejected by provider")
	// ErrProviderNotConfigured is returned when the OAuth client id or secret is missing.
	ErrProviderNotConfigured = errors.New("google oauth client is not configured")
)

// AuthError pairs a failure kind with its cause.
// errors.Is matches both the kind and anything in the cause chain.
type AuthError struct {
	Kind  error
	Cause error
}

func (e *AuthError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *AuthError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func fail(kind, cause error) error {
	return &AuthError{Kind: kind, Cause: cause}
}

// KindOf returns the failure kind of err, ErrUnknown for foreign errors
func KindOf(err error) error {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ErrUnknown
}

// CauseOf returns the underlying error detail, or nil
func CauseOf(err error) error {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Cause
	}
	return err
}
