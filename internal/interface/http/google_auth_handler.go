package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mfund-labs/mf-backend/internal/application"
	"github.com/mfund-labs/mf-backend/pkg/helpers"
	"github.com/mfund-labs/mf-backend/pkg/response"
	"github.com/mfund-labs/mf-backend/pkg/validation"
)

// GoogleSignIn is the application service behind the Google routes
type GoogleSignIn interface {
	AuthURL(ctx context.Context, state string) (string, error)
	HandleCallback(ctx context.Context, code, state string) (*application.LoginResult, error)
}

type GoogleAuthHandler struct {
	Service GoogleSignIn
	Logger  *logrus.Logger
	// HideDetails drops error causes from responses (production)
	HideDetails bool
}

func NewGoogleAuthHandler(service GoogleSignIn, logger *logrus.Logger, hideDetails bool) *GoogleAuthHandler {
	return &GoogleAuthHandler{Service: service, Logger: logger, HideDetails: hideDetails}
}

type consentQuery struct {
	State string `form:"state" binding:"max=2048"`
}

type callbackQuery struct {
	Code  string `form:"code"`
	State string `form:"state" binding:"max=2048"`
	// Error is set by Google when the user declines consent
	Error string `form:"error"`
}

// Redirect sends the browser to Google's consent screen.
// GET /auth/google?state=...
func (h *GoogleAuthHandler) Redirect(c *gin.Context) {
	var q consentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid state parameter", validation.Summary(err))
		return
	}
	url, err := h.Service.AuthURL(c.Request.Context(), q.State)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to generate OAuth URL", h.details(err))
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback finishes the sign-in and redirects to the frontend with the session.
// GET /auth/google/callback?code=...&state=...
func (h *GoogleAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	var q callbackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid callback parameters", validation.Summary(err))
		return
	}
	if q.Error != "" {
		helpers.LoggerFrom(ctx, h.Logger).WithField("provider_error", q.Error).Warn("google returned an error to the callback")
	}

	res, err := h.Service.HandleCallback(ctx, q.Code, q.State)
	if err != nil {
		status, message := callbackFailure(err)
		response.Error(c, status, message, h.details(err))
		return
	}
	c.Redirect(http.StatusFound, res.RedirectURL)
}

func callbackFailure(err error) (int, string) {
	switch application.KindOf(err) {
	case application.ErrMissingCode:
		return http.StatusBadRequest, "Missing code in callback"
	case application.ErrMissingIdentityToken:
		return http.StatusBadRequest, "No id_token returned from Google"
	case application.ErrIncompleteProfile:
		return http.StatusBadRequest, "Google profile missing email"
	case application.ErrTokenExchange:
		if errors.Is(err, application.ErrProviderRejectedCode) {
			return http.StatusBadRequest, "Invalid or expired authorization code"
		}
	}
	return http.StatusInternalServerError, "Authentication failed"
}

func (h *GoogleAuthHandler) details(err error) string {
	if h.HideDetails {
		return ""
	}
	if cause := application.CauseOf(err); cause != nil {
		return cause.Error()
	}
	return ""
}
