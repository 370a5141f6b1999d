package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/mfund-labs/mf-backend/internal/interface/http"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(root, api *gin.RouterGroup) {
	root.GET("/health", m.Handler.Health)
	api.GET("/health", m.Handler.Health)
}
