package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/services"
)

// CSRFValidator checks a double-submitted token pair.
type CSRFValidator interface {
	Matches(cookie, header string) error
}

// CSRF requires mutating requests to echo the csrf-token cookie in the
// X-CSRF-Token header. It is a pass-through when disabled.
func CSRF(v CSRFValidator, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		cookie, _ := c.Cookie(services.CSRFCookieName)
		if err := v.Matches(cookie, c.GetHeader(services.CSRFHeaderName)); err != nil {
			GetRequestLogger(c).WithField("path", SanitizePath(c.Request.URL.Path)).Warn("rejected request with invalid csrf token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Invalid CSRF token"})
			return
		}
		c.Next()
	}
}
