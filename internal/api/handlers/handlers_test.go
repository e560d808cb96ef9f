package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/render"
	"github.com/shineplatform/sitegen/internal/services"
	"github.com/shineplatform/sitegen/internal/storage"
	"github.com/shineplatform/sitegen/internal/templates"
)

type testDeps struct {
	auth     *services.AuthService
	csrf     *services.CSRFService
	previews *services.PreviewService
	catalog  *templates.Catalog
	renderer *render.Dispatcher
	storeDir string
	authHdl  *AuthHandler
	prevHdl  *PreviewHandler
	tmplHdl  *TemplateHandler
	pageHdl  *PageHandler
	cfg      config.Config
}

func newTestDeps(t *testing.T, cfg config.Config) *testDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := templates.Default()
	require.NoError(t, err)
	dispatcher, err := render.NewDispatcher()
	require.NoError(t, err)

	dir := t.TempDir()
	previews := services.NewPreviewService(
		storage.NewPreviewStore(storage.NewFileStore(dir)),
		services.PreviewOptions{Templates: reg, Renderable: render.Supports},
	)
	d := &testDeps{
		auth:     services.NewAuthService(cfg),
		csrf:     services.NewCSRFService(cfg),
		previews: previews,
		catalog:  templates.NewCatalog(reg, "", templates.DefaultScanTTL),
		renderer: dispatcher,
		storeDir: dir,
		cfg:      cfg,
	}
	d.authHdl = NewAuthHandler(d.auth, d.csrf, cfg.IsProduction())
	d.prevHdl = NewPreviewHandler(previews)
	d.tmplHdl = NewTemplateHandler(d.catalog)
	d.pageHdl = NewPageHandler(previews, dispatcher)
	return d
}

func (d *testDeps) router() *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/login", d.authHdl.Login)
	r.GET("/api/auth/verify", d.authHdl.Verify)
	r.POST("/api/auth/preview-manager", d.authHdl.PreviewManagerLogin)
	r.GET("/api/auth/preview-manager/verify", d.authHdl.PreviewManagerVerify)
	r.POST("/api/auth/logout", d.authHdl.Logout)
	r.GET("/api/auth/csrf", d.authHdl.CSRFToken)
	r.POST("/api/preview/save", d.prevHdl.Save)
	r.GET("/api/preview/get", d.prevHdl.Get)
	r.GET("/api/preview/list", d.prevHdl.List)
	r.DELETE("/api/preview/:key", d.prevHdl.Delete)
	r.GET("/api/templates", d.tmplHdl.List)
	r.GET("/api/templates/:id/defaults", d.tmplHdl.Defaults)
	r.GET("/preview/:key", d.pageHdl.Show)
	return r
}

func doJSON(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}
