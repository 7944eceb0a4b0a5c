package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apprecipe "github.com/flavorforge/recipeai/internal/application/recipe"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
)

func generateCmd(opts *options) *cobra.Command {
	var (
		diet       []string
		cuisine    string
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "generate [ingredients...]",
		Short: "Generate a recipe from ingredients you have",
		Example: `  recipeai generate chicken rice "bell peppers"
  recipeai generate tofu spinach --diet vegan --cuisine thai --difficulty easy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := recipe.GenerationRequest{
				Ingredients:         args,
				DietaryRestrictions: diet,
			}
			if cuisine != "" {
				req.CuisineType = &cuisine
			}
			if difficulty != "" {
				d, err := recipe.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				req.Difficulty = &d
			}

			return run(cmd, opts, func(ctx context.Context, d deps) error {
				st := d.Generator.Generate(ctx, req)
				if st.Error != "" {
					return errors.New(st.Error)
				}
				if st.Recipe == nil {
					return errors.New("no recipe was generated")
				}
				printRecipe(cmd.OutOrStdout(), *st.Recipe)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&diet, "diet", nil, "dietary restrictions, e.g. vegan,gluten-free")
	cmd.Flags().StringVar(&cuisine, "cuisine", "", "cuisine type")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard")
	return cmd
}

func searchCmd(opts *options) *cobra.Command {
	var (
		limit       int
		available   []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search recipes in plain language",
		Long: `Search recipes in plain language.

With --interactive, each line read from standard input is a new query.
Queries typed in quick succession are collapsed into one search.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				if limit == 0 {
					limit = d.Config.Search.Limit
				}
				if interactive {
					return interactiveSearch(ctx, cmd, d, limit, available)
				}

				st := d.Searcher.Search(ctx, recipe.SearchRequest{
					Query:                strings.Join(args, " "),
					AvailableIngredients: available,
					Limit:                limit,
				})
				if st.Error != "" {
					return errors.New(st.Error)
				}
				printRecipeTable(cmd.OutOrStdout(), st.Results)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (1-50)")
	cmd.Flags().StringSliceVar(&available, "with", nil, "ingredients you have, to favour recipes using them")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read queries from standard input as you type")
	return cmd
}

// interactiveSearch feeds every input line to the debounced searcher and
// prints each completed search
func interactiveSearch(ctx context.Context, cmd *cobra.Command, d deps, limit int, available []string) error {
	out := cmd.OutOrStdout()
	unsubscribe := d.Searcher.Subscribe(func(st apprecipe.SearchState) {
		switch {
		case st.Loading:
			fmt.Fprintf(out, "Searching for %q...\n", st.Query)
		case st.Error != "":
			fmt.Fprintf(out, "%s\n", st.Error)
		case st.Success:
			fmt.Fprintf(out, "Results for %q:\n", st.Query)
			printRecipeTable(out, st.Results)
		}
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		d.Searcher.DebouncedSearch(recipe.SearchRequest{
			Query:                query,
			AvailableIngredients: available,
			Limit:                limit,
		}, 0)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return waitIdle(ctx, d.Searcher, d.Config.Search.Debounce+d.Config.API.Timeout)
}

// waitIdle blocks until no debounced search is pending or running
func waitIdle(ctx context.Context, s *apprecipe.Searcher, timeout time.Duration) error {
	deadline := time.After(timeout)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for s.Pending() || s.State().Loading {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return errors.New("search did not finish in time")
		case <-tick.C:
		}
	}
	return nil
}

func recipesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse the recipe catalogue",
	}
	cmd.AddCommand(recipesListCmd(opts), recipesGetCmd(opts))
	return cmd
}

func recipesListCmd(opts *options) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				page, err := d.Recipes.List(ctx, outbound.ListOptions{Limit: limit, Offset: offset})
				if err != nil {
					return err
				}
				printRecipeTable(cmd.OutOrStdout(), page.Recipes)
				if page.Total != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d\n", len(page.Recipes), *page.Total)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of recipes to skip")
	return cmd
}

func recipesGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, d deps) error {
				r, err := d.Recipes.Get(ctx, args[0])
				if err != nil {
					return err
				}
				printRecipe(cmd.OutOrStdout(), *r)
				return nil
			})
		},
	}
}
