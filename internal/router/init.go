package router

import (
	"time"

	"github.com/mfund-labs/mf-backend/internal/container"
	handlers "github.com/mfund-labs/mf-backend/internal/interface/http"
	"github.com/mfund-labs/mf-backend/internal/interface/middleware"
	"github.com/mfund-labs/mf-backend/internal/router/modules"
)

// InitModules builds handlers from the container and adds their modules to
// the registry. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	var counter middleware.Counter
	if c.Redis != nil {
		counter = c.Redis
	}
	limiter := middleware.RateLimit(counter, c.Cfg.RateLimitPerMinute, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP(), c.Logger)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.Store, c.Cfg)))
	r.Add(modules.NewGoogleAuthModule(
		handlers.NewGoogleAuthHandler(c.GoogleAuth, c.Logger, c.Cfg.IsProduction()),
		limiter,
	))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
