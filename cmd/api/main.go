package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shineplatform/sitegen/internal/api/routes"
	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/database"
	"github.com/shineplatform/sitegen/internal/jobs"
	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/ratelimit"
	"github.com/shineplatform/sitegen/internal/render"
	"github.com/shineplatform/sitegen/internal/server"
	"github.com/shineplatform/sitegen/internal/services"
	"github.com/shineplatform/sitegen/internal/storage"
	"github.com/shineplatform/sitegen/internal/templates"
	"github.com/shineplatform/sitegen/internal/version"
)

func main() {
	if err := run(); err != nil {
		logger.Log().WithError(err).Fatal("sitegen exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Log to both stdout and a rotated file
	logger.Init(cfg.Debug, logger.RotatingWriter(cfg.LogDir, "sitegen.log"))
	log := logger.Log()
	log.WithField("env", cfg.Environment).Infof("starting %s %s", version.Name, version.Full())

	for _, problem := range cfg.Validate() {
		log.WithError(problem).Warn("login is disabled until this is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := database.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open preview store: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.WithError(err).Warn("failed to close preview store")
		}
	}()

	var rateStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RateLimitStore == config.RateLimitRedis {
		client := database.NewRedisClient(cfg.Redis)
		defer client.Close()
		if err := database.Ping(ctx, client); err != nil {
			return fmt.Errorf("rate limit store: %w", err)
		}
		rateStore = ratelimit.NewRedisStore(client)
	}

	registry, err := templates.Default()
	if err != nil {
		return fmt.Errorf("load template registry: %w", err)
	}
	catalog := templates.NewCatalog(registry, cfg.TemplatesDir, templates.DefaultScanTTL)
	dispatcher, err := render.NewDispatcher()
	if err != nil {
		return fmt.Errorf("load page templates: %w", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(promRegistry)
	build := version.Get()
	metrics.SetBuildInfo(build.Version, build.ShortCommit(), build.GoVersion)

	notifier := services.NewNotificationService(cfg)
	opts := services.PreviewOptions{
		Templates:         registry,
		Renderable:        render.Supports,
		StrictTemplates:   cfg.StrictTemplates,
		PreserveCreatedAt: cfg.PreserveCreatedAt,
	}
	if notifier.Enabled() {
		opts.Notifier = notifier
	}
	previews := services.NewPreviewService(storage.NewPreviewStore(kv), opts)

	apiLimiter := ratelimit.NewAPILimiter(ratelimit.APIRequestsPerMinute, ratelimit.APIIdleTTL)
	janitor, err := jobs.NewJanitor(rateStore, apiLimiter, catalog)
	if err != nil {
		return fmt.Errorf("schedule janitor: %w", err)
	}
	janitor.Start()

	srv, err := server.New(routes.Deps{
		Config:      cfg,
		Auth:        services.NewAuthService(cfg),
		CSRF:        services.NewCSRFService(cfg),
		Previews:    previews,
		Catalog:     catalog,
		Renderer:    dispatcher,
		AuthLimiter: ratelimit.NewAuthLimiter(rateStore),
		APILimiter:  apiLimiter,
		Gatherer:    promRegistry,
	})
	if err != nil {
		return err
	}

	runErr := srv.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer cancel()
	janitor.Stop(shutdownCtx)
	notifier.Wait()
	log.Info("shutdown complete")
	return runErr
}
