// Package main runs the stand-in Recipe AI backend: the JSON API the
// client talks to, backed by SQLite or PostgreSQL
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/flavorforge/recipeai/internal/infrastructure/container"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "stubapi",
		Short: "Serve the Recipe AI backend API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configPath)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(configPath string) error {
	app := fx.New(
		fx.NopLogger, // Use our own logger instead of Fx's

		fx.Supply(
			container.ConfigPath(configPath),
			container.ServiceName("recipeai-stub"),
		),
		container.StubModule,
	)

	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start stub backend: %w", err)
	}

	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop stub backend gracefully: %w", err)
	}
	return nil
}
