package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nfjones/blogmart-api/internal/config"
	"github.com/nfjones/blogmart-api/migrations"
	"github.com/pressly/goose/v3"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards to slog.Error without calling os.Exit so that main can
// handle application exit consistently.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes the given goose command against the configured
// database using the embedded migration files.
func runMigrations(cfg *config.Config, logger *slog.Logger, command string) error {
	migrationLogger := logger.With(
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command))

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
	}()

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	case "version":
		err = goose.Version(db, ".")
	default:
		return fmt.Errorf("unknown migration command %q (expected up, down, status, or version)", command)
	}
	if err != nil {
		migrationLogger.Error("Migration operation failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	migrationLogger.Info("Migration operation completed",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}
