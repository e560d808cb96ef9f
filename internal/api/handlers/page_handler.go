package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/api/middleware"
	"github.com/shineplatform/sitegen/internal/render"
	"github.com/shineplatform/sitegen/internal/services"
	"github.com/shineplatform/sitegen/internal/util"
)

const htmlContentType = "text/html; charset=utf-8"

// PageHandler renders saved previews as public HTML pages.
type PageHandler struct {
	previews   *services.PreviewService
	dispatcher *render.Dispatcher
}

func NewPageHandler(previews *services.PreviewService, dispatcher *render.Dispatcher) *PageHandler {
	return &PageHandler{previews: previews, dispatcher: dispatcher}
}

// Show renders /preview/:key. Missing previews and unknown templates get the
// 404 page.
func (h *PageHandler) Show(c *gin.Context) {
	key := c.Param("key")
	rec, err := h.previews.Get(c.Request.Context(), key)
	if err != nil {
		h.notFound(c)
		return
	}

	page, err := h.dispatcher.Render(rec)
	if errors.Is(err, render.ErrUnknownTemplate) {
		middleware.GetRequestLogger(c).WithField("key", util.SanitizeForLog(key)).
			WithField("template", util.SanitizeForLog(rec.Template)).Warn("preview has no renderer")
		h.notFound(c)
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.dispatcher.WriteHTML(&buf, page); err != nil {
		h.serverError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func (h *PageHandler) notFound(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.dispatcher.WriteNotFound(&buf); err != nil {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	c.Data(http.StatusNotFound, htmlContentType, buf.Bytes())
}

func (h *PageHandler) serverError(c *gin.Context, err error) {
	middleware.GetRequestLogger(c).WithError(err).Error("failed to render preview page")
	c.String(http.StatusInternalServerError, "Internal server error")
}
