package web

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// CorsMiddleware handles CORS headers so a browser app on another origin
// can call the development API.
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, Authorization")

	// Preflight requests stop here
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// Pages carry one inline helper script and nothing from other origins
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'",
		"style-src 'self'",
		"img-src 'self' data:",
		"form-action 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// RequestIDMiddleware tags each request with an ID for log correlation
func RequestIDMiddleware(c rweb.Context) error {
	id := c.Request().Header("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Response().SetHeader("X-Request-ID", id)
	return c.Next()
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()
	reqID, _ := c.Get("request_id").(string)

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"request_id", reqID,
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"request_id", reqID,
		"duration", time.Since(start),
		"error", err,
	)

	return err
}

// RateLimitMiddleware allows each client requestsPerMinute requests in a
// rolling one-minute window. A limit of zero or less disables it.
func RateLimitMiddleware(requestsPerMinute int) rweb.Handler {
	limiter := newRateLimiter(requestsPerMinute, time.Now)

	return func(c rweb.Context) error {
		if requestsPerMinute <= 0 {
			return c.Next()
		}

		ip := c.Request().Header("X-Forwarded-For")
		if ip == "" {
			ip = c.Request().Header("X-Real-IP")
		}
		if ip == "" {
			ip = "unknown"
		}

		if !limiter.allow(ip) {
			logger.Info("Rate limit exceeded", "ip", ip)
			c.SetStatus(http.StatusTooManyRequests)
			return c.WriteJSON(map[string]string{"message": "Too many requests. Please try again later."})
		}
		return c.Next()
	}
}

type visitor struct {
	windowStart time.Time
	count       int
}

// rateLimiter counts requests per key in fixed one-minute windows
type rateLimiter struct {
	mu       sync.Mutex
	limit    int
	now      func() time.Time
	visitors map[string]*visitor
}

func newRateLimiter(limit int, now func() time.Time) *rateLimiter {
	return &rateLimiter{limit: limit, now: now, visitors: make(map[string]*visitor)}
}

func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, v := range l.visitors {
		if now.Sub(v.windowStart) > time.Minute {
			delete(l.visitors, k)
		}
	}

	v, ok := l.visitors[key]
	if !ok || now.Sub(v.windowStart) >= time.Minute {
		l.visitors[key] = &visitor{windowStart: now, count: 1}
		return true
	}
	v.count++
	return v.count <= l.limit
}
