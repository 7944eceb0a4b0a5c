package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flavorforge/recipeai/pkg/healthcheck"
)

func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				hc := healthcheck.New("recipeai", d.Config.App.Version, d.Logger)
				hc.Register("backend", healthcheck.NewHTTPChecker(
					strings.TrimRight(d.Config.API.BaseURL, "/")+"/health",
					&http.Client{Timeout: d.Config.API.Timeout},
				))

				resp := hc.Check(ctx)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "API: %s\n", d.Config.API.BaseURL)
				for _, c := range resp.Checks {
					line := fmt.Sprintf("%-8s %s (%d ms)", c.Name, c.Status, c.DurationMS)
					if c.Message != "" {
						line += ": " + c.Message
					}
					fmt.Fprintln(out, line)
				}

				if u, ok := d.Auth.CurrentUser(); ok {
					fmt.Fprintf(out, "Signed in as %s\n", u.DisplayName())
				} else {
					fmt.Fprintln(out, "Not signed in")
				}

				if resp.Status == healthcheck.StatusUnhealthy {
					return fmt.Errorf("backend is unavailable")
				}
				return nil
			})
		},
	}
}
