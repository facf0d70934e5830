package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nfjones/blogmart-api/internal/config"
)

// setupAppDatabase establishes a connection to the database and configures
// the connection pool. Returns the database connection if successful, or an
// error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// pool_size connections stay warm; max_overflow more may be opened
	// under load and are closed again when idle.
	db.SetMaxOpenConns(cfg.Database.PoolSize + cfg.Database.MaxOverflow)
	db.SetMaxIdleConns(cfg.Database.PoolSize)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		"host", cfg.Database.Host,
		"database", cfg.Database.Name)
	return db, nil
}
