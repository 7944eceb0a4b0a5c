package recipe

import "errors"

// Local validation errors. Their text is shown to the user as-is.
var (
	ErrNoIngredients     = errors.New("please add at least one ingredient")
	ErrEmptyQuery        = errors.New("please enter a search query")
	ErrInvalidDifficulty = errors.New("difficulty must be one of easy, medium or hard")
	ErrRecipeNotFound    = errors.New("recipe not found")
)
