package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/templates"
)

type TemplateHandler struct {
	catalog *templates.Catalog
}

func NewTemplateHandler(catalog *templates.Catalog) *TemplateHandler {
	return &TemplateHandler{catalog: catalog}
}

// List returns the available templates.
func (h *TemplateHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "templates": h.catalog.ListTemplates()})
}

// Defaults returns sample data for a template. Unknown ids get the default
// template's data, so this never 404s.
func (h *TemplateHandler) Defaults(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"templateId": id,
		"data":       h.catalog.Registry().DefaultData(id),
	})
}
