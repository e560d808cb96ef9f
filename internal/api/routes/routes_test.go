package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/ratelimit"
	"github.com/shineplatform/sitegen/internal/render"
	"github.com/shineplatform/sitegen/internal/services"
	"github.com/shineplatform/sitegen/internal/storage"
	"github.com/shineplatform/sitegen/internal/templates"
)

func testDeps(t *testing.T, cfg config.Config) Deps {
	t.Helper()
	reg, err := templates.Default()
	require.NoError(t, err)
	dispatcher, err := render.NewDispatcher()
	require.NoError(t, err)

	promReg := prometheus.NewRegistry()
	metrics.Register(promReg)

	return Deps{
		Config: cfg,
		Auth:   services.NewAuthService(cfg),
		CSRF:   services.NewCSRFService(cfg),
		Previews: services.NewPreviewService(
			storage.NewPreviewStore(storage.NewFileStore(t.TempDir())),
			services.PreviewOptions{Templates: reg, Renderable: render.Supports},
		),
		Catalog:     templates.NewCatalog(reg, "", 0),
		Renderer:    dispatcher,
		AuthLimiter: ratelimit.NewAuthLimiter(ratelimit.NewMemoryStore()),
		APILimiter:  ratelimit.NewAPILimiter(ratelimit.APIRequestsPerMinute, ratelimit.APIIdleTTL),
		Gatherer:    promReg,
	}
}

func newRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, Register(router, testDeps(t, cfg)))
	return router
}

func serve(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	router := newRouter(t, config.Config{AdminPassword: "pw", AuthSecret: "s"})

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/health",
		"POST /api/auth/login",
		"POST /api/auth/preview-manager",
		"GET /api/auth/verify",
		"GET /api/auth/preview-manager/verify",
		"POST /api/auth/logout",
		"GET /api/auth/csrf",
		"POST /api/preview/save",
		"GET /api/preview/get",
		"GET /api/preview/list",
		"DELETE /api/preview/:key",
		"GET /api/templates",
		"GET /api/templates/:id/defaults",
		"GET /preview/:key",
		"GET /metrics",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestRegister_MissingDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assert.Error(t, Register(gin.New(), Deps{}))
}

func TestPreviewRoutesRequireSession(t *testing.T) {
	router := newRouter(t, config.Config{AdminPassword: "pw", AuthSecret: "s"})

	w := serve(router, http.MethodGet, "/api/preview/list", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodPost, "/api/preview/save", `{"key":"k","template":"dj-template","data":{}}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSaveRenderFlow(t *testing.T) {
	router := newRouter(t, config.Config{AdminPassword: "pw", AuthSecret: "s"})

	w := serve(router, http.MethodPost, "/api/auth/preview-manager", `{"password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	session := cookieNamed(w, "preview-manager-session")
	require.NotNil(t, session)

	body := `{"key":"acme","template":"dj-template","data":{"hero":{"title":"Acme"},"music":{"tracks":[{"title":"a"},{"title":"b"},{"title":"c"}]}}}`
	w = serve(router, http.MethodPost, "/api/preview/save", body, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/preview/acme"`)

	w = serve(router, http.MethodGet, "/preview/acme", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, strings.Count(w.Body.String(), `class="card track"`))
}

func TestLoginIsRateLimited(t *testing.T) {
	router := newRouter(t, config.Config{AdminPassword: "pw", AuthSecret: "s"})

	for i := 0; i < ratelimit.AuthMaxRequests; i++ {
		w := serve(router, http.MethodPost, "/api/auth/login", `{"password":"wrong"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}
	w := serve(router, http.MethodPost, "/api/auth/login", `{"password":"pw"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Separate path, separate window.
	w = serve(router, http.MethodPost, "/api/auth/preview-manager", `{"password":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFEnforcedWhenEnabled(t *testing.T) {
	router := newRouter(t, config.Config{AdminPassword: "pw", AuthSecret: "s", CSRFEnabled: true})

	w := serve(router, http.MethodPost, "/api/auth/login", `{"password":"pw"}`)
	session := cookieNamed(w, "session-token")
	require.NotNil(t, session)

	save := `{"key":"k","template":"dj-template","data":{}}`
	w = serve(router, http.MethodPost, "/api/preview/save", save, session)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(router, http.MethodGet, "/api/auth/csrf", "")
	csrf := cookieNamed(w, services.CSRFCookieName)
	require.NotNil(t, csrf)

	req := httptest.NewRequest(http.MethodPost, "/api/preview/save", strings.NewReader(save))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(services.CSRFHeaderName, csrf.Value)
	req.AddCookie(session)
	req.AddCookie(csrf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Reads are exempt.
	w = serve(router, http.MethodGet, "/api/preview/list", "", session)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t, config.Config{})

	w := serve(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sitegen_")
}
