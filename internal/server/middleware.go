package server

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const headerRequestID = "X-Request-Id"

// RequestID tags each request with a ULID so log lines across services can
// be correlated. Client-supplied IDs are trusted as-is.
func (s *Server) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String()
		}
		c.Set("request_id", id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func (s *Server) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// RateLimitBookings applies a fixed per-IP window to booking creation when
// redis is configured; without redis it is a no-op.
func (s *Server) RateLimitBookings() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.redis == nil || !s.cfg.RateLimit.Enabled {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().UTC().Unix() / 60
		key := fmt.Sprintf("ratelimit:bookings:%s:%d", c.ClientIP(), window)

		count, err := s.redis.Incr(ctx, key).Result()
		if err != nil {
			// Rate limiting is best-effort; storage still guards correctness.
			s.log.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			s.redis.Expire(ctx, key, time.Minute)
		}
		if count > int64(s.cfg.RateLimit.BookingsPerMinute) {
			AbortWithError(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}
