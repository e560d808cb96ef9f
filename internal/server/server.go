package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shineplatform/sitegen/internal/api/middleware"
	"github.com/shineplatform/sitegen/internal/api/routes"
	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/logger"
)

// ShutdownTimeout bounds how long in-flight requests get after a stop signal.
const ShutdownTimeout = 5 * time.Second

// Server wraps the HTTP engine and shared dependencies for easier testing.
type Server struct {
	Engine *gin.Engine
	cfg    config.Config
}

// New wires up the middleware chain and registers routes.
func New(deps routes.Deps) (*Server, error) {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	// X-Forwarded-For is only honoured from configured proxies; otherwise the
	// rate limiters key on the socket peer.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	securityCfg := middleware.DefaultSecurityHeadersConfig()
	securityCfg.IsDevelopment = !cfg.IsProduction()
	router.Use(
		middleware.Recovery(cfg.Debug),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.SecurityHeaders(securityCfg),
		middleware.Metrics(),
	)

	if err := routes.Register(router, deps); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "route not found"})
			return
		}
		var buf bytes.Buffer
		if deps.Renderer == nil || deps.Renderer.WriteNotFound(&buf) != nil {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", buf.Bytes())
	})

	return &Server{Engine: router, cfg: cfg}, nil
}

// Run starts the HTTP server with proper shutdown semantics.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.HTTPPort),
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log().WithField("addr", srv.Addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
