package apiserver

import (
	"sort"
	"strings"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "with": true, "for": true,
	"of": true, "to": true, "in": true, "me": true, "some": true,
	"recipe": true, "recipes": true, "dish": true, "something": true,
}

// RankRecipes scores recipes against a natural-language query and returns
// the best matches, highest score first. Recipes matching no query term are
// dropped; available ingredients only break ties between matches.
func RankRecipes(recipes []recipe.Recipe, req recipe.SearchRequest) []recipe.Recipe {
	terms := queryTerms(req.Query)
	available := make(map[string]bool, len(req.AvailableIngredients))
	for _, name := range req.AvailableIngredients {
		available[strings.ToLower(strings.TrimSpace(name))] = true
	}

	type scored struct {
		recipe recipe.Recipe
		score  int
	}
	matches := make([]scored, 0, len(recipes))
	for _, r := range recipes {
		score := scoreRecipe(r, terms)
		if score == 0 {
			continue
		}
		for _, name := range r.IngredientNames() {
			if available[name] {
				score++
			}
		}
		matches = append(matches, scored{recipe: r, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].recipe.Title < matches[j].recipe.Title
	})

	limit := req.EffectiveLimit()
	out := make([]recipe.Recipe, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.recipe)
	}
	return out
}

func queryTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r > 127)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if !stopWords[f] {
			terms = append(terms, f)
		}
	}
	if len(terms) == 0 {
		return fields
	}
	return terms
}

func scoreRecipe(r recipe.Recipe, terms []string) int {
	title := strings.ToLower(r.Title)
	description := strings.ToLower(r.Description)
	cuisine := strings.ToLower(r.Cuisine())
	ingredients := r.IngredientNames()

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += 3
		}
		if cuisine != "" && strings.Contains(cuisine, term) {
			score += 2
		}
		if r.HasTag(term) {
			score += 2
		}
		for _, ing := range ingredients {
			if strings.Contains(ing, term) {
				score += 2
				break
			}
		}
		if strings.Contains(description, term) {
			score++
		}
	}
	return score
}
