package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/mfund-labs/mf-backend/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register exposes expvar (including the google_oauth step counters) to
// private-network callers.
func (m *DebugModule) Register(_, api *gin.RouterGroup) {
	api.GET("/debug/vars", middleware.RequirePrivateIP(), gin.WrapH(expvar.Handler()))
}
