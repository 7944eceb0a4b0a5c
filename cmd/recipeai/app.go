package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	appinventory "github.com/flavorforge/recipeai/internal/application/inventory"
	apprecipe "github.com/flavorforge/recipeai/internal/application/recipe"
	"github.com/flavorforge/recipeai/internal/domain/shared"
	"github.com/flavorforge/recipeai/internal/infrastructure/config"
	"github.com/flavorforge/recipeai/internal/infrastructure/container"
	"github.com/flavorforge/recipeai/internal/infrastructure/monitoring"
	"github.com/flavorforge/recipeai/internal/ports/inbound"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

const msgSessionExpired = "Your session has expired. Please sign in again."

const stopTimeout = 10 * time.Second

// deps are the services a command can use
type deps struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Tracing   *monitoring.TracingProvider
	Auth      inbound.Authenticator
	Session   inbound.SessionWatcher
	Recipes   outbound.RecipeAPI
	Generator *apprecipe.Generator
	Searcher  *apprecipe.Searcher
	Pantry    *appinventory.Service
}

type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "recipeai",
		Short:         "Generate, search and plan recipes from your pantry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a config file")

	rootCmd.AddCommand(
		loginCmd(opts),
		signupCmd(opts),
		demoCmd(opts),
		logoutCmd(opts),
		whoamiCmd(opts),
		generateCmd(opts),
		searchCmd(opts),
		recipesCmd(opts),
		inventoryCmd(opts),
		statusCmd(opts),
	)

	return rootCmd
}

// run starts the client container, restores the session and calls fn inside
// a command span. Session expiry during the command is reported on stderr.
func run(cmd *cobra.Command, opts *options, fn func(ctx context.Context, d deps) error) error {
	var d deps
	app := fx.New(
		fx.NopLogger,
		fx.Supply(
			container.ConfigPath(opts.configPath),
			container.ServiceName("recipeai"),
		),
		container.ClientModule,
		fx.Invoke(func(in deps) { d = in }),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	unsubscribe := d.Session.OnExpired(func() {
		fmt.Fprintln(cmd.ErrOrStderr(), msgSessionExpired)
	})
	defer unsubscribe()

	ctx, span := d.Tracing.StartCommandSpan(ctx, cmd.CommandPath())
	err := fn(ctx, d)
	monitoring.EndSpan(span, err)

	if err != nil {
		d.Logger.Debug("Command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
		return userError{err}
	}
	return nil
}

// userError prints as the message a user should see
type userError struct{ err error }

func (e userError) Error() string { return shared.MessageOf(e.err, "An error occurred") }
func (e userError) Unwrap() error { return e.err }
