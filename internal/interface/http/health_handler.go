package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfund-labs/mf-backend/config"
)

const pingTimeout = 2 * time.Second

// Pinger reports database reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB  Pinger
	Cfg *config.Config
	now func() time.Time
}

func NewHealthHandler(db Pinger, cfg *config.Config) *HealthHandler {
	return &HealthHandler{DB: db, Cfg: cfg, now: time.Now}
}

type healthEnv struct {
	HasDatabase bool   `json:"hasDatabase"`
	HasJWT      bool   `json:"hasJWT"`
	AppEnv      string `json:"appEnv"`
}

type healthBody struct {
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
	Path      string    `json:"path"`
	Env       healthEnv `json:"env"`
	Database  string    `json:"database"`
}

// Health always answers 200; a down database shows in the body only.
func (h *HealthHandler) Health(c *gin.Context) {
	db := "down"
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.DB.Ping(ctx); err == nil {
			db = "up"
		}
	}
	c.JSON(http.StatusOK, healthBody{
		Message:   "OK",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Path:      c.Request.URL.Path,
		Env: healthEnv{
			HasDatabase: h.Cfg.DatabaseURLSet,
			HasJWT:      h.Cfg.JWTSecretSet,
			AppEnv:      h.Cfg.Env,
		},
		Database: db,
	})
}
