package config

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "FRONTEND_URL", "DATABASE_URL", "GOOGLE_REDIRECT_URI", "JWT_ACCESS_SECRET", "JWT_SECRET", "CORS_ALLOWED_ORIGINS", "APP_ENV", "TRUSTED_PROXIES", "TRUST_CLOUDFLARE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3002", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.Equal(t, "http://localhost:3002/auth/google/callback", cfg.GoogleRedirectURI)
	assert.Equal(t, "mutual_funds_db", cfg.DatabaseName())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.False(t, cfg.DatabaseURLSet)
	assert.False(t, cfg.JWTSecretSet)
	assert.Empty(t, cfg.TrustedProxyList())
	assert.False(t, cfg.TrustCloudflare)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "mongodb+srv://u:p@cluster0.example.net/funds?retryWrites=true")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200,http://es2:9200")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("TRUST_CLOUDFLARE", "true")

	cfg := Load()

	assert.Equal(t, "http://localhost:8080/auth/google/callback", cfg.GoogleRedirectURI)
	assert.Equal(t, "funds", cfg.DatabaseName())
	assert.True(t, cfg.DatabaseURLSet)
	assert.Equal(t, "legacy", cfg.JWTAccessSecret)
	assert.True(t, cfg.JWTSecretSet)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxyList())
	assert.True(t, cfg.TrustCloudflare)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Env = "qa"
	cfg.DatabaseURL = "postgres://localhost/db"
	cfg.JWTRefreshSecret = ""

	err := cfg.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"Env", "DatabaseURL", "JWTRefreshSecret"}, fields)
}

func TestIsProductionAndGoogleConfigured(t *testing.T) {
	cfg := &Config{Env: "Production", GoogleClientID: "id"}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.GoogleConfigured())

	cfg.GoogleClientSecret = "secret"
	assert.True(t, cfg.GoogleConfigured())
}
