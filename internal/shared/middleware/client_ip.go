package middleware

import (
	"github.com/gin-gonic/gin"

	"ayurveda-backend/internal/shared/reqctx"
	"ayurveda-backend/internal/shared/utils"
)

type contextKey string

const (
	clientIPKey  = "client_ip"
	callerCtxKey = contextKey("caller")
)

// ClientIPMiddleware extracts the client IP address once per request and
// injects it into both the gin context and the request context.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set(clientIPKey, clientIP)
		c.Request = c.Request.WithContext(reqctx.WithClientIP(c.Request.Context(), clientIP))

		c.Next()
	}
}

// ClientIP trả về IP đã extract, fallback sang ExtractClientIP khi middleware chưa chạy
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(clientIPKey); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}
