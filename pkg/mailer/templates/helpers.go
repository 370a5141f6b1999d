package templates

import (
	"time"

	"github.com/mfund-labs/mf-backend/config"
)

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

// NewBaseEmailData fills the company fields from config, then applies opts
func NewBaseEmailData(cfg *config.Config, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,

		LogoURL:     cfg.LogoURL,
		SupportURL:  cfg.SupportURL,
		FrontendURL: cfg.FrontendURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email, loginType string, isNewUser bool, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, name, email, opts...)
	d.LoginType = loginType
	d.IsNewUser = isNewUser
	return ToMap(d)
}
