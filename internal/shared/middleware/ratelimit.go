package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"ayurveda-backend/internal/shared/response"
)

const visitorTTL = 3 * time.Minute

// visitor tracks a rate limiter per client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorStore giữ limiter theo IP. Entry cũ bị dọn lazily khi request tới,
// không có goroutine nền.
type visitorStore struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	rps         rate.Limit
	burst       int
	ttl         time.Duration
	lastCleanup time.Time
	nowFunc     func() time.Time
}

func newVisitorStore(rps float64, burst int, ttl time.Duration) *visitorStore {
	return &visitorStore{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		nowFunc:  time.Now,
	}
}

// allow lấy (hoặc tạo) limiter cho ip và tiêu thụ một token
func (s *visitorStore) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	if now.Sub(s.lastCleanup) > s.ttl {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.ttl {
				delete(s.visitors, k)
			}
		}
		s.lastCleanup = now
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (s *visitorStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimit enforce per-IP token bucket. Vượt limit -> 429 RATE_LIMITED.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	return rateLimitWithStore(newVisitorStore(rps, burst, visitorTTL))
}

func rateLimitWithStore(store *visitorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ClientIP(c)
		if !store.allow(ip) {
			log.Warn().
				Str("ip", ip).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("rate limit exceeded")
			c.Header("Retry-After", "1")
			response.AbortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}
		c.Next()
	}
}
