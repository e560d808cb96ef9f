package routes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shineplatform/sitegen/internal/api/handlers"
	"github.com/shineplatform/sitegen/internal/api/middleware"
	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/ratelimit"
	"github.com/shineplatform/sitegen/internal/render"
	"github.com/shineplatform/sitegen/internal/services"
	"github.com/shineplatform/sitegen/internal/templates"
)

// Deps carries the services the router needs. Gatherer may be nil, in which
// case /metrics is not mounted.
type Deps struct {
	Config      config.Config
	Auth        *services.AuthService
	CSRF        *services.CSRFService
	Previews    *services.PreviewService
	Catalog     *templates.Catalog
	Renderer    *render.Dispatcher
	AuthLimiter *ratelimit.Limiter
	APILimiter  *ratelimit.APILimiter
	Gatherer    prometheus.Gatherer
}

func (d Deps) validate() error {
	switch {
	case d.Auth == nil, d.CSRF == nil:
		return errors.New("routes: auth services are required")
	case d.Previews == nil:
		return errors.New("routes: preview service is required")
	case d.Catalog == nil, d.Renderer == nil:
		return errors.New("routes: template catalog and renderer are required")
	case d.AuthLimiter == nil:
		return errors.New("routes: auth limiter is required")
	}
	return nil
}

// Register wires up the JSON API, the public preview pages and /metrics.
func Register(router *gin.Engine, deps Deps) error {
	if err := deps.validate(); err != nil {
		return err
	}

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	pageHandler := handlers.NewPageHandler(deps.Previews, deps.Renderer)
	router.GET("/preview/:key", pageHandler.Show)

	api := router.Group("/api")
	if deps.APILimiter != nil {
		api.Use(middleware.APIRateLimit(deps.APILimiter))
	}

	api.GET("/health", handlers.HealthHandler(deps.Config.Store))

	// Auth routes
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.CSRF, deps.Config.IsProduction())
	loginLimit := middleware.AuthRateLimit(deps.AuthLimiter)
	api.POST("/auth/login", loginLimit, authHandler.Login)
	api.POST("/auth/preview-manager", loginLimit, authHandler.PreviewManagerLogin)
	api.GET("/auth/verify", authHandler.Verify)
	api.GET("/auth/preview-manager/verify", authHandler.PreviewManagerVerify)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/csrf", authHandler.CSRFToken)

	// Templates
	templateHandler := handlers.NewTemplateHandler(deps.Catalog)
	api.GET("/templates", templateHandler.List)
	api.GET("/templates/:id/defaults", templateHandler.Defaults)

	protected := api.Group("/preview")
	protected.Use(
		middleware.RequireSession(deps.Auth, services.ScopeAdmin, services.ScopePreviewManager),
		middleware.CSRF(deps.CSRF, deps.Config.CSRFEnabled),
	)
	{
		previewHandler := handlers.NewPreviewHandler(deps.Previews)
		protected.POST("/save", previewHandler.Save)
		protected.GET("/get", previewHandler.Get)
		protected.GET("/list", previewHandler.List)
		protected.DELETE("/:key", previewHandler.Delete)
	}

	return nil
}
