package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/slidegrove/analytics-engine/internal/logging"
	apperrors "github.com/slidegrove/analytics-engine/pkg/errors"
)

// requestLoggingMiddleware logs method, path, status, and duration for every
// request, mirroring the field set the teacher's own
// middleware/logging.go's RequestLogging emits (method, path, status,
// duration_ms), re-expressed as a gin handler func instead of an
// http.Handler wrapper.
func requestLoggingMiddleware(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("http request",
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("duration", time.Since(start)),
		)
	}
}

// corsConfig mirrors the field set of the teacher's middleware/cors.go
// CORSConfig, trimmed to what this service actually needs to configure.
type corsConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func defaultCORSConfig() corsConfig {
	return corsConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
}

func corsMiddleware(cfg corsConfig) gin.HandlerFunc {
	origins := joinFields(cfg.AllowedOrigins)
	methods := joinFields(cfg.AllowedMethods)
	headers := joinFields(cfg.AllowedHeaders)

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origins)
		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ipLimiter is a per-key token bucket backed by golang.org/x/time/rate,
// already a direct dependency of this module for exactly this purpose. Keys
// are client IPs; entries are created lazily and never evicted within a
// process lifetime, which is acceptable for the bounded cardinality of a
// single deployment's client set.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newIPLimiter(perMinute, burst int) *ipLimiter {
	rps := rate.Limit(float64(perMinute) / 60.0)
	return &ipLimiter{limiters: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

func (l *ipLimiter) forKey(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// rateLimitMiddleware returns RATE_LIMIT_EXCEEDED (spec §6) once a client
// exceeds RATE_LIMIT_PER_MINUTE. A perMinute of 0 disables rate limiting
// entirely (useful for tests and local development).
func rateLimitMiddleware(limiter *ipLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		lim := limiter.forKey(c.ClientIP())
		if !lim.Allow() {
			err := apperrors.RateLimitError("rate limit exceeded", 1)
			c.AbortWithStatusJSON(err.Code.HTTPStatus(), err.Envelope())
			return
		}
		c.Next()
	}
}

// recoveryMiddleware converts a panic in any downstream handler into a
// SYSTEM-category ErrorEnvelope instead of crashing the process or leaking a
// raw stack trace to the caller.
func recoveryMiddleware(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", logging.Any("panic", r))
				err := apperrors.SystemError("an unexpected error occurred")
				c.AbortWithStatusJSON(err.Code.HTTPStatus(), err.Envelope())
			}
		}()
		c.Next()
	}
}
