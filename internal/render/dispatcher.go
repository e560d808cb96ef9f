// Package render decides which page a preview record turns into and writes
// that page as HTML.
package render

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/models"
	"github.com/shineplatform/sitegen/internal/util"
)

//go:embed assets/*.html
var assets embed.FS

// ErrUnknownTemplate is returned for template ids no renderer handles.
var ErrUnknownTemplate = errors.New("no renderer for template")

// Renderer names double as HTML layout names.
const (
	RendererBusiness  = "business"
	RendererDJ        = "dj"
	RendererPortfolio = "portfolio"
)

var rendererFor = map[string]string{
	"inspiration-site": RendererBusiness,
	"landing-page":     RendererBusiness,
	"dj-template":      RendererDJ,
	"portfolio":        RendererPortfolio,
}

// Page is everything a layout needs. Data is the record payload unchanged;
// Content is its decoded form for the chosen renderer.
type Page struct {
	Key            string
	Template       string
	Renderer       string
	Title          string
	Description    string
	WhatsAppNumber string
	Data           json.RawMessage
	Content        any
}

// Dispatcher maps template ids to renderers. Safe for concurrent use.
type Dispatcher struct {
	tmpl *template.Template
	now  func() time.Time
}

// NewDispatcher parses the embedded layouts.
func NewDispatcher() (*Dispatcher, error) {
	d := &Dispatcher{now: time.Now}
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"waLink": whatsAppLink,
		"year":   func() int { return d.now().Year() },
	}).ParseFS(assets, "assets/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	d.tmpl = tmpl
	return d, nil
}

// Supports reports whether id has a renderer.
func Supports(id string) bool {
	_, ok := rendererFor[id]
	return ok
}

// Render builds the page for rec. Missing or mistyped fields fall back to the
// layout defaults instead of failing.
func (d *Dispatcher) Render(rec *models.PreviewRecord) (*Page, error) {
	name, ok := rendererFor[rec.Template]
	if !ok {
		return nil, ErrUnknownTemplate
	}

	page := &Page{
		Key:            rec.Key,
		Template:       rec.Template,
		Renderer:       name,
		WhatsAppNumber: rec.WhatsAppNumber,
		Data:           rec.Data,
	}
	if page.WhatsAppNumber == "" {
		page.WhatsAppNumber = models.DefaultWhatsAppNumber
	}

	switch name {
	case RendererBusiness:
		var c BusinessContent
		decodeLenient(rec.Data, &c)
		page.Title = orDefault(c.Hero.Title, "Welcome")
		page.Description = c.Hero.Subtitle
		page.Content = &c
	case RendererDJ:
		var c DJContent
		decodeLenient(rec.Data, &c)
		page.Title = orDefault(c.Hero.Title, "DJ")
		page.Description = c.Hero.Subtitle
		page.Content = &c
	case RendererPortfolio:
		cfg := ConvertToPortfolio(rec.Data)
		page.Title = cfg.Meta.Title
		page.Description = cfg.Meta.Description
		page.Content = cfg
	}

	metrics.IncRender(name)
	return page, nil
}

// WriteHTML executes the layout for page.Renderer.
func (d *Dispatcher) WriteHTML(w io.Writer, page *Page) error {
	return d.tmpl.ExecuteTemplate(w, page.Renderer+".html", page)
}

// WriteNotFound writes the 404 page.
func (d *Dispatcher) WriteNotFound(w io.Writer) error {
	return d.tmpl.ExecuteTemplate(w, "notfound.html", nil)
}

// decodeLenient fills dst with whatever parts of data decode. Type mismatches
// leave the affected fields at their zero value.
func decodeLenient(data json.RawMessage, dst any) {
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.WithFields(logrus.Fields{
			"error": util.Truncate(util.SanitizeForLog(err.Error()), 256),
		}).Debug("preview data partially decoded")
	}
}

func whatsAppLink(number string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	return "https://wa.me/" + digits
}
