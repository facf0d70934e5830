// Package main implements the entry point for the blogmart API server,
// a CRUD backend for users, their posts, and a product catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/nfjones/blogmart-api/internal/config"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command instead of the server (up, down, status, version)")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, sets up logging, and dispatches to either the
// migration runner or the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"db_host", cfg.Database.Host,
		"db_pool_size", cfg.Database.PoolSize)

	if migrateCmd != "" {
		return runMigrations(cfg, logger, migrateCmd)
	}

	ctx := context.Background()

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		// The application owns the connection only after construction
		// succeeds.
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
