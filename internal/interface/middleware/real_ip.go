package middleware

import (
	"github.com/gin-gonic/gin"
)

// RealIPKey is the gin context key holding the resolved client address
const RealIPKey = "real_ip"

// TrustProxies limits which peers may set the client address through
// forwarding headers. With no proxies the TCP peer is always the client.
// cloudflare makes CF-Connecting-IP authoritative; enable it only when the
// service is reachable through Cloudflare alone.
func TrustProxies(r *gin.Engine, proxies []string, cloudflare bool) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return err
	}
	if cloudflare {
		r.TrustedPlatform = gin.PlatformCloudflare
	}
	return nil
}

// RealIP stores the client address used for rate limiting, the private
// network guard and access logs. Forwarded headers count only when the
// peer is a trusted proxy (see TrustProxies).
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RealIPKey, c.ClientIP())
		c.Next()
	}
}

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(RealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
