package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
)

func inventoryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"pantry"},
		Short:   "Manage the ingredients you have at home",
	}
	cmd.AddCommand(
		inventoryListCmd(opts),
		inventoryAddCmd(opts),
		inventoryRemoveCmd(opts),
		inventoryMatchesCmd(opts),
		inventoryRefreshCmd(opts),
	)
	return cmd
}

func inventoryListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				if err := d.Pantry.RefreshInventory(ctx); err != nil {
					return err
				}
				printInventory(cmd.OutOrStdout(), d.Pantry.State().Inventory)
				return nil
			})
		},
	}
}

func inventoryAddCmd(opts *options) *cobra.Command {
	var quantity string

	cmd := &cobra.Command{
		Use:   "add <ingredient>",
		Short: "Add an ingredient, or update its quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := inventory.AddItemRequest{IngredientName: args[0]}
			if quantity != "" {
				req.Quantity = &quantity
			}

			return run(cmd, opts, func(ctx context.Context, d deps) error {
				if err := d.Pantry.AddItem(ctx, req); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", req.IngredientName)
				printInventory(cmd.OutOrStdout(), d.Pantry.State().Inventory)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "free-form quantity, e.g. \"2 cups\"")
	return cmd
}

func inventoryRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <ingredient>",
		Aliases: []string{"rm"},
		Short:   "Remove an ingredient",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				if err := d.Pantry.RemoveItem(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func inventoryMatchesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "Show recipes your inventory can cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				if err := d.Pantry.RefreshMatches(ctx); err != nil {
					return err
				}
				printMatches(cmd.OutOrStdout(), d.Pantry.State().Matches)
				return nil
			})
		},
	}
}

func inventoryRefreshCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the inventory and its recipe matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				if err := d.Pantry.Load(ctx); err != nil {
					return err
				}
				st := d.Pantry.State()
				printInventory(cmd.OutOrStdout(), st.Inventory)
				fmt.Fprintln(cmd.OutOrStdout())
				printMatches(cmd.OutOrStdout(), st.Matches)
				return nil
			})
		},
	}
}
