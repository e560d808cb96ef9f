package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/util"
)

const internalErrorMessage = "Internal server error"

// Recovery turns a handler panic into a 500 and counts it by route. API
// callers get the JSON error envelope; rendered preview pages get plain text
// so a broken template never leaks a partial page. verbose adds the stack and
// redacted request headers to the log entry.
func Recovery(verbose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			// Client went away mid-stream; nothing to answer.
			if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				c.Abort()
				return
			}

			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			metrics.IncPanic(route)

			fields := logrus.Fields{
				"panic":  util.Truncate(util.SanitizeForLog(fmt.Sprint(r)), maxLoggedValue),
				"route":  route,
				"method": c.Request.Method,
			}
			if verbose {
				fields["path"] = SanitizePath(c.Request.URL.Path)
				fields["headers"] = SanitizeHeaders(c.Request.Header)
				fields["stack"] = string(debug.Stack())
			}
			GetRequestLogger(c).WithFields(fields).Error("recovered from handler panic")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": internalErrorMessage})
				return
			}
			c.Header("Cache-Control", "no-store")
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte(internalErrorMessage))
			c.Abort()
		}()
		c.Next()
	}
}
