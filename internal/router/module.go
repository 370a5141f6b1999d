package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes. root is the
// bare engine group (browser-facing paths), api is mounted at /api.
type Module interface {
	Register(root, api *gin.RouterGroup)
}
