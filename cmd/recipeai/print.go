package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
)

// printRecipe writes the full recipe card
func printRecipe(w io.Writer, r recipe.Recipe) {
	fmt.Fprintf(w, "%s\n%s\n", r.Title, strings.Repeat("=", len(r.Title)))
	if r.Description != "" {
		fmt.Fprintf(w, "%s\n", r.Description)
	}

	meta := []string{
		fmt.Sprintf("%d min", r.CookingTimeMinutes),
		fmt.Sprintf("serves %d", r.Servings),
		string(r.Difficulty),
	}
	if c := r.Cuisine(); c != "" {
		meta = append(meta, c)
	}
	fmt.Fprintf(w, "%s\n", strings.Join(meta, " · "))
	if len(r.DietaryTags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.DietaryTags, ", "))
	}

	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}

	fmt.Fprintln(w, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
	fmt.Fprintf(w, "\nID: %s\n", r.ID)
}

// printRecipeTable writes one line per recipe
func printRecipeTable(w io.Writer, recipes []recipe.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTIME\tDIFFICULTY\tCUISINE")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%s\t%s\t%d min\t%s\t%s\n", r.ID, r.Title, r.CookingTimeMinutes, r.Difficulty, r.Cuisine())
	}
	_ = tw.Flush()
}

// printInventory writes the pantry, marking unconfirmed items
func printInventory(w io.Writer, inv *inventory.UserInventory) {
	if inv == nil || len(inv.Items) == 0 {
		fmt.Fprintln(w, "Your inventory is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INGREDIENT\tQUANTITY\tADDED")
	for _, item := range inv.Items {
		name := item.IngredientName
		if item.Pending {
			name += " (saving)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, item.QuantityText(), item.AddedAt.Local().Format("2006-01-02"))
	}
	_ = tw.Flush()
}

// printMatches writes both match buckets
func printMatches(w io.Writer, m *recipe.Matches) {
	if m == nil || m.Total() == 0 {
		fmt.Fprintln(w, "No recipes match your inventory yet")
		return
	}

	fmt.Fprintf(w, "You can make (%d):\n", len(m.ExactMatches))
	for _, r := range m.ExactMatches {
		fmt.Fprintf(w, "  %s  [%s]\n", r.Title, r.ID)
	}

	fmt.Fprintf(w, "\nAlmost there (%d):\n", len(m.PartialMatches))
	for _, r := range m.PartialMatches {
		fmt.Fprintf(w, "  %s  %.0f%%, missing %s  [%s]\n",
			r.Title, r.MatchPercentage*100, strings.Join(r.MissingIngredients, ", "), r.ID)
	}
}
