package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nfjones/blogmart-api/internal/config"
	"github.com/nfjones/blogmart-api/internal/platform/postgres"
	"github.com/nfjones/blogmart-api/internal/service"
	"github.com/nfjones/blogmart-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	postStore    store.PostStore
	productStore store.ProductStore

	// Service interfaces
	userService    service.UserService
	postService    service.PostService
	productService service.ProductService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)
	app.productStore = postgres.NewPostgresProductStore(db, logger)

	// Initialize services
	app.userService = service.NewUserService(db, app.userStore, app.postStore, logger)
	app.postService = service.NewPostService(db, app.userStore, app.postStore, logger)
	app.productService = service.NewProductService(db, app.productStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
