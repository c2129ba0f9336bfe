package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP resolves the originating address of a request. Proxy headers are
// honored only when they carry a parseable IP; otherwise the connection's
// remote address is used.
func clientIP(c *gin.Context) string {
	for _, entry := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		candidate := strings.TrimSpace(entry)
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	if real := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(real) != nil {
		return real
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
