package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/database"
	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/render"
	"github.com/shineplatform/sitegen/internal/services"
	"github.com/shineplatform/sitegen/internal/storage"
	"github.com/shineplatform/sitegen/internal/templates"
)

func main() {
	force := flag.Bool("force", false, "overwrite existing sample previews")
	suffix := flag.String("suffix", "-sample", "suffix appended to the template id to form each preview key")
	flag.Parse()

	if err := seed(*force, *suffix); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

// seed writes one preview per registered template using its sample data, into
// whichever backend SITEGEN_STORE selects.
func seed(force bool, suffix string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Debug, os.Stdout)
	ctx := context.Background()

	kv, err := database.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	registry, err := templates.Default()
	if err != nil {
		return err
	}
	previews := services.NewPreviewService(storage.NewPreviewStore(kv), services.PreviewOptions{
		Templates:         registry,
		Renderable:        render.Supports,
		PreserveCreatedAt: true,
	})

	for _, tmpl := range registry.List() {
		key := tmpl.ID + suffix
		if !force {
			if _, err := previews.Get(ctx, key); err == nil {
				fmt.Printf("- %s exists, skipping\n", key)
				continue
			} else if !errors.Is(err, services.ErrPreviewNotFound) {
				return err
			}
		}
		res, err := previews.Save(ctx, services.SaveInput{
			Key:      key,
			Template: tmpl.ID,
			Data:     registry.DefaultData(tmpl.ID),
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", key, err)
		}
		fmt.Printf("✓ %s -> %s\n", key, res.PreviewURL)
	}
	return nil
}
