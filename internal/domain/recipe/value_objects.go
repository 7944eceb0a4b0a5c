package recipe

import (
	"strings"
)

// Difficulty represents how demanding a recipe is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid checks if the difficulty is one of the known levels
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty parses a difficulty level, case-insensitively
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", ErrInvalidDifficulty
	}
	return d, nil
}

// Search limits accepted by the backend
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// GenerationRequest asks the backend to generate a recipe from ingredients
type GenerationRequest struct {
	Ingredients         []string    `json:"ingredients"`
	DietaryRestrictions []string    `json:"dietary_restrictions"`
	CuisineType         *string     `json:"cuisine_type,omitempty"`
	Difficulty          *Difficulty `json:"difficulty,omitempty"`
}

// Validate performs the local checks done before any network call
func (r GenerationRequest) Validate() error {
	if len(r.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if r.Difficulty != nil && !r.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	return nil
}

// SearchRequest is a natural-language recipe search
type SearchRequest struct {
	Query                string   `json:"query"`
	AvailableIngredients []string `json:"available_ingredients,omitempty"`
	Limit                int      `json:"limit,omitempty"`
}

// Validate rejects empty and whitespace-only queries
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// EffectiveLimit returns the limit the backend will apply
func (r SearchRequest) EffectiveLimit() int {
	switch {
	case r.Limit <= 0:
		return DefaultSearchLimit
	case r.Limit > MaxSearchLimit:
		return MaxSearchLimit
	}
	return r.Limit
}
