package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shineplatform/sitegen/internal/util"
)

// quietPaths are polled by uptime checks and scrapers and only logged at debug level.
var quietPaths = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

// RequestLogger logs one line per request along with the request_id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := GetRequestLogger(c).WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       SanitizePath(c.Request.URL.Path),
			"latency":    time.Since(start).String(),
			"client":     c.ClientIP(),
			"user_agent": util.Truncate(util.SanitizeForLog(c.Request.UserAgent()), 200),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", strings.Join(c.Errors.Errors(), "; "))
		}
		if quietPaths[c.Request.URL.Path] {
			entry.Debug("handled request")
			return
		}
		entry.Info("handled request")
	}
}
