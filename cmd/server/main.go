// Command server runs the tienda HTTP API: authenticated CRUD for the
// product, category, user, and deal resources, plus pre-signed image upload
// URLs and a public health probe.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmorales-dev/tienda-api/internal/config"
	"github.com/dmorales-dev/tienda-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	app := newApplication(cfg, log)

	if cfg.Database.RunMigrations {
		if err := app.runMigrations(context.Background()); err != nil {
			return err
		}
	}

	handler, err := app.router()
	if err != nil {
		return err
	}

	return app.serve(handler)
}
