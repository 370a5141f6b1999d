package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfund-labs/mf-backend/pkg/response"
)

// AllowPrivateIP bypasses the rate limit for loopback and RFC 1918 callers
// (load balancer health checks, in-cluster smoke tests).
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return isPrivate(ipFromCtx(c))
	}
}

// RequirePrivateIP rejects callers outside the private network. Guards the
// debug endpoints.
func RequirePrivateIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPrivate(ipFromCtx(c)) {
			response.AbortWithError(c, http.StatusForbidden, "forbidden", "")
			return
		}
		c.Next()
	}
}

func isPrivate(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate()
}
