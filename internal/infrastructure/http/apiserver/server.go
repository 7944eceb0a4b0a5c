// Package apiserver provides a stand-in for the Recipe AI backend: a pure
// JSON API over chi and gorm that implements the contract the client consumes
package apiserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flavorforge/recipeai/internal/infrastructure/config"
	"github.com/flavorforge/recipeai/internal/infrastructure/http/middleware"
	"github.com/flavorforge/recipeai/internal/infrastructure/security"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/flavorforge/recipeai/pkg/healthcheck"
)

// Dependencies are the stores the server reads and writes. Database, when
// set, is pinged by the health endpoints.
type Dependencies struct {
	Users     outbound.UserRepository
	Recipes   outbound.RecipeRepository
	Inventory outbound.InventoryRepository
	Database  healthcheck.Pinger
}

// Server represents the stub backend's HTTP server
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	server     *http.Server
	router     *chi.Mux
	registry   *prometheus.Registry
	auth       *security.AuthService
	validation *security.ValidationService
	recipes    outbound.RecipeRepository
	inventory  outbound.InventoryRepository
	generator  *Generator
	openAPI    *OpenAPIHandler
	health     *healthcheck.HealthCheck
	now        func() time.Time
}

// New creates a new server instance
func New(cfg *config.Config, log *zap.Logger, deps Dependencies) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		config:     cfg,
		logger:     log,
		registry:   registry,
		auth:       security.NewAuthService(cfg, deps.Users, log.Named("auth")),
		validation: security.NewValidationService(),
		recipes:    deps.Recipes,
		inventory:  deps.Inventory,
		generator:  NewGenerator(),
		openAPI:    NewOpenAPIHandler(log),
		health:     healthcheck.New("recipeai-stub", cfg.App.Version, log.Named("health")),
		now:        time.Now,
	}
	if deps.Database != nil {
		s.health.Register("database", healthcheck.NewDatabaseChecker(deps.Database))
	}

	s.router = s.setupRoutes(middleware.New(cfg, log, middleware.NewMetrics(registry)))
	s.server = &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes(mw *middleware.Middleware) *chi.Mux {
	r := chi.NewRouter()

	r.Use(mw.Tracing())
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(mw.Logger())
	r.Use(mw.Recovery())
	r.Use(mw.Metrics())
	r.Use(mw.CORS())

	r.Get("/", s.handleRoot)
	r.Get("/health", s.health.Handler())
	r.Get("/health/live", s.health.LivenessHandler())
	r.Get("/health/ready", s.health.ReadinessHandler())
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/openapi.yaml", s.openAPI.ServeOpenAPISpec)

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(middleware.Authenticate(s.auth))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignup)
			r.Post("/login", s.handleLogin)
			r.With(middleware.RequireUser).Get("/me", s.handleMe)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", s.handleListRecipes)
			r.Post("/generate", s.handleGenerateRecipe)
			r.Post("/search", s.handleSearchRecipes)
			r.Get("/{id}", s.handleGetRecipe)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.handleGetInventory)
			r.Post("/items", s.handleAddItem)
			r.Delete("/items/{name}", s.handleRemoveItem)
			r.Post("/match-recipes", s.handleMatchRecipes)
		})
	})

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	return r
}

// Handler returns the root handler, for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the Prometheus registry served on /metrics
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting stub API server", zap.String("address", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down stub API server")
	return s.server.Shutdown(ctx)
}
