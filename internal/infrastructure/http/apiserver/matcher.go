package apiserver

import (
	"sort"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
)

// PartialMatchThreshold is the share of a recipe's ingredients the
// inventory must cover for a partial match
const PartialMatchThreshold = 0.8

// MatchRecipes partitions recipes into those the inventory fully covers and
// those it covers at or above the partial threshold. Partial matches carry
// their missing ingredients and coverage as a fraction. Ingredient names are
// compared case-insensitively and each distinct name counts once.
func MatchRecipes(inv *inventory.UserInventory, recipes []recipe.Recipe) recipe.Matches {
	have := make(map[string]bool)
	for _, name := range inv.Names() {
		have[name] = true
	}

	matches := recipe.Matches{
		ExactMatches:   []recipe.Recipe{},
		PartialMatches: []recipe.Recipe{},
	}
	for _, r := range recipes {
		names := r.DistinctIngredientNames()
		if len(names) == 0 {
			continue
		}

		missing := make([]string, 0)
		for _, name := range names {
			if !have[name] {
				missing = append(missing, name)
			}
		}

		if len(missing) == 0 {
			matches.ExactMatches = append(matches.ExactMatches, r)
			continue
		}

		coverage := float64(len(names)-len(missing)) / float64(len(names))
		if coverage >= PartialMatchThreshold {
			r.MissingIngredients = missing
			r.MatchPercentage = coverage
			matches.PartialMatches = append(matches.PartialMatches, r)
		}
	}

	sort.SliceStable(matches.ExactMatches, func(i, j int) bool {
		return matches.ExactMatches[i].Title < matches.ExactMatches[j].Title
	})
	sort.SliceStable(matches.PartialMatches, func(i, j int) bool {
		a, b := matches.PartialMatches[i], matches.PartialMatches[j]
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		return a.Title < b.Title
	})

	return matches
}
