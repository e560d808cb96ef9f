package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/services"
)

// PreviewHandler exposes preview CRUD as JSON.
type PreviewHandler struct {
	previews *services.PreviewService
}

func NewPreviewHandler(previews *services.PreviewService) *PreviewHandler {
	return &PreviewHandler{previews: previews}
}

// Save writes a preview and returns its public URL.
func (h *PreviewHandler) Save(c *gin.Context) {
	var in services.SaveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequestBody(c)
		return
	}
	res, err := h.previews.Save(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to save preview")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "previewUrl": res.PreviewURL})
}

// Get returns the preview named by the key query parameter.
func (h *PreviewHandler) Get(c *gin.Context) {
	rec, err := h.previews.Get(c.Request.Context(), c.Query("key"))
	if err != nil {
		respondError(c, err, "Failed to get preview")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "preview": rec})
}

// List returns every preview, most recently updated first.
func (h *PreviewHandler) List(c *gin.Context) {
	previews, err := h.previews.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list previews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "previews": previews})
}

// Delete removes a preview. Missing keys still answer 200.
func (h *PreviewHandler) Delete(c *gin.Context) {
	if err := h.previews.Delete(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err, "Failed to delete preview")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
