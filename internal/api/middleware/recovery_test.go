package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shineplatform/sitegen/internal/logger"
)

func panicRouter(verbose bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.Use(Recovery(verbose))
	router.GET("/api/preview/get", func(c *gin.Context) {
		panic("decode preview dj-template-launch: unexpected EOF")
	})
	router.GET("/preview/:key", func(c *gin.Context) {
		panic("template dj-template: nil hero block")
	})
	router.GET("/preview-stream/:key", func(c *gin.Context) {
		c.String(http.StatusOK, "<html>")
		panic("late failure")
	})
	router.GET("/abort", func(c *gin.Context) {
		panic(http.ErrAbortHandler)
	})
	return router
}

func TestRecovery_APIRouteGetsJSONEnvelope(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)

	w := httptest.NewRecorder()
	panicRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/preview/get?key=dj-template-launch", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["error"])

	out := buf.String()
	assert.Contains(t, out, "recovered from handler panic")
	assert.Contains(t, out, "unexpected EOF")
	assert.Contains(t, out, `"route":"/api/preview/get"`)
	assert.Contains(t, out, "request_id")
	assert.NotContains(t, out, "goroutine ", "stack is only logged in verbose mode")
}

func TestRecovery_PreviewPageGetsPlainText(t *testing.T) {
	logger.Init(false, &bytes.Buffer{})

	w := httptest.NewRecorder()
	panicRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preview/dj-template-launch", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRecovery_VerboseLogsStackAndRedactsSession(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(true, buf)

	req := httptest.NewRequest(http.MethodGet, "/preview/dj-template-launch", nil)
	req.Header.Set("Cookie", "preview-manager-session=secret-session")
	req.Header.Set("X-CSRF-Token", "secret-csrf")
	req.Header.Set("User-Agent", "curl/8.0\r\nlevel=info msg=forged")
	w := httptest.NewRecorder()
	panicRouter(true).ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	out := buf.String()
	assert.Contains(t, out, "goroutine ")
	assert.Contains(t, out, "nil hero block")
	assert.Contains(t, out, "<redacted>")
	assert.NotContains(t, out, "secret-session")
	assert.NotContains(t, out, "secret-csrf")
	assert.NotContains(t, out, "\nlevel=info msg=forged")
}

func TestRecovery_KeepsStatusAlreadyWritten(t *testing.T) {
	logger.Init(false, &bytes.Buffer{})

	w := httptest.NewRecorder()
	panicRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preview-stream/dj-template-launch", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>", w.Body.String())
}

func TestRecovery_AbortHandlerIsNotLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)

	w := httptest.NewRecorder()
	panicRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/abort", nil))

	assert.NotContains(t, buf.String(), "recovered from handler panic")
}
