package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nfjones/blogmart-api/internal/api"
	apiMiddleware "github.com/nfjones/blogmart-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	userHandler := api.NewUserHandler(app.userService)
	postHandler := api.NewPostHandler(app.postService)
	productHandler := api.NewProductHandler(app.productService)

	// Register routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/stats", userHandler.Stats)
		r.Get("/{id}", userHandler.Get)
		r.Patch("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
		r.Get("/{id}/posts", userHandler.ListPosts)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Post("/", postHandler.Create)
		r.Get("/", postHandler.List)
		r.Get("/filtered", postHandler.Filter)
		r.Get("/{id}", postHandler.Get)
		r.Patch("/{id}", postHandler.Update)
		r.Delete("/{id}", postHandler.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", productHandler.Create)
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.Get)
		r.Patch("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
