// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/flavorforge/recipeai/internal/application/auth"
	"github.com/flavorforge/recipeai/internal/application/inventory"
	"github.com/flavorforge/recipeai/internal/application/recipe"
	"github.com/flavorforge/recipeai/internal/application/session"
	"github.com/flavorforge/recipeai/internal/infrastructure/config"
	"github.com/flavorforge/recipeai/internal/infrastructure/http/apiclient"
	"github.com/flavorforge/recipeai/internal/infrastructure/http/apiserver"
	"github.com/flavorforge/recipeai/internal/infrastructure/monitoring"
	"github.com/flavorforge/recipeai/internal/infrastructure/persistence/file"
	gormstore "github.com/flavorforge/recipeai/internal/infrastructure/persistence/gorm"
	"github.com/flavorforge/recipeai/internal/infrastructure/persistence/memory"
	"github.com/flavorforge/recipeai/internal/infrastructure/persistence/redis"
	"github.com/flavorforge/recipeai/internal/ports/inbound"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"github.com/flavorforge/recipeai/pkg/logger"
)

// ConfigPath is the optional config file handed to config.Load
type ConfigPath string

// ServiceName names the process in traces and log entries
type ServiceName string

// ClientModule wires the command-line client
var ClientModule = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	SessionModule,
	APIClientModule,
	ControllerModule,
	fx.Invoke(RegisterClientHooks),
)

// StubModule wires the stand-in backend
var StubModule = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DatabaseModule,
	RepositoryModule,
	fx.Provide(NewStubServer),
	fx.Invoke(RegisterStubHooks),
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(name ServiceName, cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			OutputPaths: cfg.App.LogOutputs,
			Service:     string(name),
			Version:     cfg.App.Version,
		})
	},
)

// TracingModule provides the OpenTelemetry tracer provider
var TracingModule = fx.Provide(
	func(lc fx.Lifecycle, name ServiceName, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(context.Background(), string(name), cfg, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
)

// SessionModule provides the session store selected by configuration and
// the manager built on it
var SessionModule = fx.Provide(
	NewSessionStore,
	func(store outbound.SessionStore, cfg *config.Config, log *zap.Logger) *session.Manager {
		return session.NewManager(store, cfg.Session.KeyPrefix, log)
	},
	fx.Annotate(
		func(m *session.Manager) *session.Manager { return m },
		fx.As(new(inbound.SessionWatcher)),
	),
)

// NewSessionStore opens the configured session store. The Redis client is
// closed when the application stops.
func NewSessionStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.SessionStore, error) {
	switch cfg.Session.Store {
	case config.SessionStoreMemory:
		return memory.NewSessionStore(), nil
	case config.SessionStoreFile:
		return file.NewSessionStore(cfg.Session.FilePath, log), nil
	case config.SessionStoreRedis:
		client, err := redis.NewClient(context.Background(), cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closeRedis(client) },
		})
		return redis.NewSessionStore(client, log), nil
	}
	return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}

func closeRedis(client goredis.UniversalClient) error {
	return client.Close()
}

// APIClientModule provides the backend client and its typed APIs
var APIClientModule = fx.Provide(
	func() prometheus.Registerer { return prometheus.NewRegistry() },
	apiclient.NewMetrics,
	func(cfg *config.Config, sessions *session.Manager, metrics *apiclient.Metrics, log *zap.Logger) (*apiclient.Client, error) {
		client, err := apiclient.NewClient(apiclient.Options{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Tokens:  sessions,
			Metrics: metrics,
			Logger:  log.Named("api"),
		})
		if err != nil {
			return nil, err
		}
		client.OnUnauthorized(func() { sessions.Expire(context.Background()) })
		return client, nil
	},
	fx.Annotate(apiclient.NewRecipeAPI, fx.As(new(outbound.RecipeAPI))),
	fx.Annotate(apiclient.NewInventoryAPI, fx.As(new(outbound.InventoryAPI))),
	fx.Annotate(apiclient.NewAuthAPI, fx.As(new(outbound.AuthAPI))),
)

// ControllerModule provides the application controllers
var ControllerModule = fx.Provide(
	recipe.NewGenerator,
	func(api outbound.RecipeAPI, cfg *config.Config, log *zap.Logger) *recipe.Searcher {
		return recipe.NewSearcher(api, log, recipe.WithDebounce(cfg.Search.Debounce))
	},
	inventory.NewService,
	fx.Annotate(auth.NewService, fx.As(new(inbound.Authenticator))),
)

// RegisterClientHooks restores the saved session on start and releases the
// debounce timer on stop
func RegisterClientHooks(lc fx.Lifecycle, sessions *session.Manager, searcher *recipe.Searcher, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := sessions.Restore(ctx); err != nil {
				return fmt.Errorf("failed to restore session: %w", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			searcher.Close()
			_ = log.Sync()
			return nil
		},
	})
}

// DatabaseModule provides the stub backend's database
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		return gormstore.Open(cfg.Database, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(gormstore.NewRecipeRepository, fx.As(new(outbound.RecipeRepository))),
	fx.Annotate(gormstore.NewUserRepository, fx.As(new(outbound.UserRepository))),
	fx.Annotate(gormstore.NewInventoryRepository, fx.As(new(outbound.InventoryRepository))),
)

// NewStubServer builds the stub HTTP server over the repositories
func NewStubServer(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	users outbound.UserRepository,
	recipes outbound.RecipeRepository,
	pantry outbound.InventoryRepository,
) (*apiserver.Server, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	return apiserver.New(cfg, log, apiserver.Dependencies{
		Users:     users,
		Recipes:   recipes,
		Inventory: pantry,
		Database:  sqlDB,
	}), nil
}

// RegisterStubHooks seeds the catalogue, then serves until stopped
func RegisterStubHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	recipes outbound.RecipeRepository,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Recipe AI stub backend",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if _, err := apiserver.Seed(ctx, recipes, cfg.Server.SeedRecipes, 1, log); err != nil {
				log.Warn("Failed to seed recipes", zap.Error(err))
			}

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}
			if err := gormstore.Close(db); err != nil {
				log.Error("Failed to close database connection", zap.Error(err))
			}
			_ = log.Sync()
			return nil
		},
	})
}
