package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ayurveda-backend/internal/shared/response"
	"ayurveda-backend/pkg/jwt"
)

// Caller là identity đã xác thực của request
type Caller struct {
	DoctorID int64
	Role     string
}

func (c Caller) IsAdmin() bool {
	return c.Role == jwt.RoleAdmin
}

// TokenValidator được implement bởi *jwt.Manager
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware - Middleware xác thực JWT token.
// Caller được gắn vào request context (không dùng global state).
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
			return
		}

		// 3. Verify và parse JWT
		claims, err := validator.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("token rejected")
			response.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}

		// 4. Set caller vào context
		caller := Caller{DoctorID: claims.DoctorID, Role: claims.Role}
		c.Set("role", caller.Role)
		c.Request = c.Request.WithContext(WithCaller(c.Request.Context(), caller))

		c.Next()
	}
}

// RequireRole chặn request khi role của caller không nằm trong danh sách
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c.Request.Context())
		if !ok {
			response.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}

		response.AbortWithError(c, http.StatusForbidden, "FORBIDDEN", "access denied: insufficient role")
	}
}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey, caller)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerCtxKey).(Caller)
	return caller, ok
}
