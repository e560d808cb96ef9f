package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/api/middleware"
	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/render"
	"github.com/shineplatform/sitegen/internal/services"
	"github.com/shineplatform/sitegen/internal/templates"
)

// respondError maps service errors onto status codes. Anything unrecognised is
// logged with detail and answered with a generic 500 carrying fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *services.ValidationError
	var cfgErr *config.ConfigError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
	case errors.Is(err, services.ErrPreviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Preview not found"})
	case errors.Is(err, render.ErrUnknownTemplate), errors.Is(err, templates.ErrUnknownTemplate):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Template not found"})
	case errors.As(err, &cfgErr):
		middleware.GetRequestLogger(c).WithError(err).Error("request needs missing configuration")
		msg := "Server is not configured"
		if cfgErr.Key == "PREVIEW_MANAGER_PASSWORD" {
			msg = "Admin password not configured"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
	default:
		middleware.GetRequestLogger(c).WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fallback})
	}
}

func badRequestBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
}
