// Package recipe contains the recipe records exchanged with the Recipe AI backend.
// Recipes are received whole from the server and never mutated client-side.
package recipe

import (
	"strings"
	"time"
)

// Recipe represents a complete recipe as returned by the backend
type Recipe struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Ingredients        []Ingredient `json:"ingredients"`
	Instructions       []string     `json:"instructions"`
	CookingTimeMinutes int          `json:"cooking_time_minutes"`
	Servings           int          `json:"servings"`
	Difficulty         Difficulty   `json:"difficulty"`
	CuisineType        *string      `json:"cuisine_type,omitempty"`
	DietaryTags        []string     `json:"dietary_tags"`
	ImageURL           *string      `json:"image_url,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`

	// Set by the matcher on partial matches only
	MissingIngredients []string `json:"missing_ingredients,omitempty"`
	MatchPercentage    float64  `json:"match_percentage,omitempty"`
}

// Ingredient is a single line of a recipe's ingredient list
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Unit     *string `json:"unit,omitempty"`
}

// Matches partitions recipes by how well the user's inventory covers them.
// The partition is computed by the server and trusted as-is.
type Matches struct {
	ExactMatches   []Recipe `json:"exact_matches"`
	PartialMatches []Recipe `json:"partial_matches"`
}

// Cuisine returns the cuisine type or an empty string
func (r Recipe) Cuisine() string {
	if r.CuisineType == nil {
		return ""
	}
	return *r.CuisineType
}

// IngredientNames returns the lower-cased ingredient names of the recipe
func (r Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, strings.ToLower(strings.TrimSpace(ing.Name)))
	}
	return names
}

// DistinctIngredientNames returns the lower-cased ingredient names with
// duplicates and blanks removed, in first-seen order
func (r Recipe) DistinctIngredientNames() []string {
	seen := make(map[string]bool, len(r.Ingredients))
	names := make([]string, 0, len(r.Ingredients))
	for _, name := range r.IngredientNames() {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// HasTag reports whether the recipe carries the given dietary tag
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.DietaryTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// String renders an ingredient line such as "2 cup flour"
func (i Ingredient) String() string {
	parts := make([]string, 0, 3)
	if i.Quantity != "" {
		parts = append(parts, i.Quantity)
	}
	if i.Unit != nil && *i.Unit != "" {
		parts = append(parts, *i.Unit)
	}
	parts = append(parts, i.Name)
	return strings.Join(parts, " ")
}

// Total returns the number of matched recipes across both buckets
func (m Matches) Total() int {
	return len(m.ExactMatches) + len(m.PartialMatches)
}
