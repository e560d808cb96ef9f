package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersConfig holds configuration for the security headers middleware.
type SecurityHeadersConfig struct {
	// IsDevelopment skips HSTS so plain-http local runs keep working.
	IsDevelopment bool
	// CustomCSPDirectives overrides or adds CSP directives.
	CustomCSPDirectives map[string]string
}

// DefaultSecurityHeadersConfig returns the production configuration.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{}
}

// cspDirectives is ordered so the header value is stable. Preview pages embed
// remote images, media and YouTube frames supplied in preview data.
var cspDirectives = [][2]string{
	{"default-src", "'self'"},
	{"script-src", "'self' 'unsafe-eval' 'unsafe-inline'"},
	{"style-src", "'self' 'unsafe-inline'"},
	{"img-src", "'self' data: https: blob: *"},
	{"media-src", "'self' https: blob: data: *"},
	{"font-src", "'self'"},
	{"connect-src", "'self'"},
	{"frame-src", "'self' https://www.youtube.com https://youtube.com https://www.youtube-nocookie.com"},
	{"frame-ancestors", "'none'"},
}

// SecurityHeaders sets the response security headers.
func SecurityHeaders(cfg SecurityHeadersConfig) gin.HandlerFunc {
	csp := buildCSP(cfg)
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", csp)
		if !cfg.IsDevelopment {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("X-DNS-Prefetch-Control", "off")
		c.Header("Permissions-Policy", buildPermissionsPolicy())
		c.Next()
	}
}

func buildCSP(cfg SecurityHeadersConfig) string {
	seen := make(map[string]bool, len(cspDirectives))
	parts := make([]string, 0, len(cspDirectives)+len(cfg.CustomCSPDirectives))
	for _, d := range cspDirectives {
		value := d[1]
		if cfg.IsDevelopment && d[0] == "connect-src" {
			value = "'self' ws: wss:"
		}
		if custom, ok := cfg.CustomCSPDirectives[d[0]]; ok {
			value = custom
		}
		seen[d[0]] = true
		parts = append(parts, d[0]+" "+value)
	}
	for name, value := range cfg.CustomCSPDirectives {
		if !seen[name] {
			parts = append(parts, name+" "+value)
		}
	}
	return strings.Join(parts, "; ")
}

func buildPermissionsPolicy() string {
	return strings.Join([]string{
		"accelerometer=()",
		"camera=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}, ", ")
}
