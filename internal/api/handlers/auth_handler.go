package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/services"
)

// AuthHandler serves the shared-password login, verify and logout endpoints.
type AuthHandler struct {
	auth          *services.AuthService
	csrf          *services.CSRFService
	secureCookies bool
}

func NewAuthHandler(auth *services.AuthService, csrf *services.CSRFService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, csrf: csrf, secureCookies: secureCookies}
}

// setSecureCookie sets an httpOnly, SameSite=Lax cookie on the whole site.
// Secure is only set in production so local http runs keep working.
func (h *AuthHandler) setSecureCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearSecureCookie(c *gin.Context, name string) {
	h.setSecureCookie(c, name, "", -1)
}

type LoginRequest struct {
	Password string `json:"password"`
}

// Login issues an admin session.
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, services.ScopeAdmin)
}

// PreviewManagerLogin issues a preview-manager session.
func (h *AuthHandler) PreviewManagerLogin(c *gin.Context) {
	h.login(c, services.ScopePreviewManager)
}

func (h *AuthHandler) login(c *gin.Context, scope services.Scope) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	session, err := h.auth.Login(scope, req.Password)
	if err != nil {
		respondError(c, err, "Internal server error")
		return
	}

	h.setSecureCookie(c, scope.CookieName(), session.Token, int(services.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Verify reports whether the admin cookie holds a live session. It never errors.
func (h *AuthHandler) Verify(c *gin.Context) {
	h.verify(c, services.ScopeAdmin)
}

// PreviewManagerVerify is Verify for the preview-manager cookie.
func (h *AuthHandler) PreviewManagerVerify(c *gin.Context) {
	h.verify(c, services.ScopePreviewManager)
}

func (h *AuthHandler) verify(c *gin.Context, scope services.Scope) {
	token, err := c.Cookie(scope.CookieName())
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	_, err = h.auth.Verify(scope, token)
	c.JSON(http.StatusOK, gin.H{"authenticated": err == nil})
}

// Logout clears both session cookies. Tokens are not revoked server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	for _, scope := range services.Scopes() {
		h.clearSecureCookie(c, scope.CookieName())
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CSRFToken issues a double-submit token as cookie and response body.
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	if cookie, err := c.Cookie(services.CSRFCookieName); err == nil && h.csrf.Validate(cookie) == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "csrfToken": cookie})
		return
	}
	token, err := h.csrf.Generate()
	if err != nil {
		respondError(c, err, "Failed to issue CSRF token")
		return
	}
	h.setSecureCookie(c, services.CSRFCookieName, token, int(services.CSRFTokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "csrfToken": token})
}
