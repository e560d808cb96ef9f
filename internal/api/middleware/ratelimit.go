package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/ratelimit"
)

// AuthRateLimit applies the fixed-window limiter per client IP and path. If the
// backing store fails the request is let through and the failure logged.
func AuthRateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := l.Allow(c.Request.Context(), c.ClientIP()+":"+c.Request.URL.Path)
		if err != nil {
			GetRequestLogger(c).WithError(err).Warn("rate limit store unavailable; allowing request")
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed {
			retry := int(time.Until(res.ResetAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many attempts. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// APIRateLimit applies the token-bucket limiter per client IP.
func APIRateLimit(l *ratelimit.APILimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
