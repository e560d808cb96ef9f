package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/models"
	"github.com/shineplatform/sitegen/internal/services"
)

// Context keys set by RequireSession.
const (
	SessionClaimsKey = "sessionClaims"
	SessionScopeKey  = "sessionScope"
)

// SessionVerifier validates a session token for one scope.
type SessionVerifier interface {
	Verify(scope services.Scope, token string) (*models.SessionClaims, error)
}

// RequireSession lets the request through when any of the scopes' cookies holds
// a valid session. Missing secrets answer 500, anything else 401.
func RequireSession(v SessionVerifier, scopes ...services.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, scope := range scopes {
			token, err := c.Cookie(scope.CookieName())
			if err != nil || token == "" {
				continue
			}
			claims, err := v.Verify(scope, token)
			var cfgErr *config.ConfigError
			if errors.As(err, &cfgErr) {
				GetRequestLogger(c).WithError(err).Error("session check failed: auth not configured")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Authentication is not configured"})
				return
			}
			if err == nil {
				c.Set(SessionClaimsKey, claims)
				c.Set(SessionScopeKey, scope)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
	}
}
