package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/mfund-labs/mf-backend/internal/interface/http"
)

type GoogleAuthModule struct {
	Handler *handlers.GoogleAuthHandler
	Limiter gin.HandlerFunc
}

func NewGoogleAuthModule(h *handlers.GoogleAuthHandler, limiter gin.HandlerFunc) *GoogleAuthModule {
	return &GoogleAuthModule{Handler: h, Limiter: limiter}
}

// Register mounts the browser-facing routes at the root; the redirect URI
// registered with Google points at /auth/google/callback.
func (m *GoogleAuthModule) Register(root, _ *gin.RouterGroup) {
	g := root.Group("/auth/google", m.Limiter)
	g.GET("", m.Handler.Redirect)
	g.GET("/callback", m.Handler.Callback)
}
