package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ayurveda-backend/internal/shared/reqctx"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID gắn request id vào gin context, request context và response header.
// Giữ id client gửi lên nếu có, ngược lại sinh uuid mới.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(reqctx.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
