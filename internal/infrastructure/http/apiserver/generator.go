package apiserver

import (
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
)

type dishStyle struct {
	name  string
	steps []string
}

var dishStyles = []dishStyle{
	{"Skillet", []string{
		"Heat a large skillet over medium-high heat with a splash of oil.",
		"Add %s and cook, stirring often, until browned.",
	}},
	{"Stir-Fry", []string{
		"Heat a wok until smoking and add a little oil.",
		"Stir-fry %s in batches, keeping everything moving.",
	}},
	{"Bowl", []string{
		"Cook any grains or proteins separately and keep warm.",
		"Arrange %s in bowls and spoon over the pan juices.",
	}},
	{"Bake", []string{
		"Preheat the oven to 200°C (400°F) and oil a baking dish.",
		"Layer %s in the dish and bake until bubbling and golden.",
	}},
	{"Soup", []string{
		"Sweat the aromatics in a large pot with a pinch of salt.",
		"Add %s with enough water or stock to cover and simmer until tender.",
	}},
}

var portions = []struct {
	quantity string
	unit     string
}{
	{"2", "cups"},
	{"1", "cup"},
	{"200", "g"},
	{"2", "tbsp"},
	{"1", ""},
	{"3", ""},
}

var baseMinutes = map[recipe.Difficulty]int{
	recipe.DifficultyEasy:   15,
	recipe.DifficultyMedium: 30,
	recipe.DifficultyHard:   50,
}

// Generator produces template recipes. The same request always yields the
// same recipe, apart from the ID and timestamp the store assigns.
type Generator struct {
	lang language.Tag
}

// NewGenerator creates a template recipe generator
func NewGenerator() *Generator {
	return &Generator{lang: language.English}
}

// Generate builds a recipe from the requested ingredients
func (g *Generator) Generate(req recipe.GenerationRequest) (recipe.Recipe, error) {
	ingredients := normalizeList(req.Ingredients)
	if len(ingredients) == 0 {
		return recipe.Recipe{}, recipe.ErrNoIngredients
	}
	// Casers carry state and are not shared across requests
	title := cases.Title(g.lang)
	seed := requestSeed(ingredients, req)
	style := dishStyles[seed%uint32(len(dishStyles))]

	difficulty := defaultDifficulty(len(ingredients))
	if req.Difficulty != nil && req.Difficulty.IsValid() {
		difficulty = *req.Difficulty
	}

	var cuisine *string
	titlePrefix := ""
	if req.CuisineType != nil && strings.TrimSpace(*req.CuisineType) != "" {
		c := title.String(strings.TrimSpace(*req.CuisineType))
		cuisine = &c
		titlePrefix = c + " "
	}

	lines := make([]recipe.Ingredient, 0, len(ingredients))
	for i, name := range ingredients {
		p := portions[(int(seed)+i)%len(portions)]
		ing := recipe.Ingredient{Name: name, Quantity: p.quantity}
		if p.unit != "" {
			unit := p.unit
			ing.Unit = &unit
		}
		lines = append(lines, ing)
	}

	list := humanList(ingredients)
	instructions := []string{fmt.Sprintf("Wash and prepare the %s.", list)}
	for _, step := range style.steps {
		if strings.Contains(step, "%s") {
			step = fmt.Sprintf(step, list)
		}
		instructions = append(instructions, step)
	}
	instructions = append(instructions,
		"Season with salt and pepper to taste.",
		"Serve warm.",
	)

	return recipe.Recipe{
		Title:              fmt.Sprintf("%s%s %s", titlePrefix, title.String(ingredients[0]), style.name),
		Description:        fmt.Sprintf("A %s %s built around %s.", difficulty, strings.ToLower(style.name), list),
		Ingredients:        lines,
		Instructions:       instructions,
		CookingTimeMinutes: baseMinutes[difficulty] + 5*len(ingredients),
		Servings:           2 + int(seed%3),
		Difficulty:         difficulty,
		CuisineType:        cuisine,
		DietaryTags:        normalizeList(req.DietaryRestrictions),
	}, nil
}

func defaultDifficulty(n int) recipe.Difficulty {
	switch {
	case n <= 3:
		return recipe.DifficultyEasy
	case n <= 6:
		return recipe.DifficultyMedium
	default:
		return recipe.DifficultyHard
	}
}

func requestSeed(ingredients []string, req recipe.GenerationRequest) uint32 {
	h := fnv.New32a()
	for _, ing := range ingredients {
		_, _ = h.Write([]byte(ing))
		_, _ = h.Write([]byte{0})
	}
	if req.CuisineType != nil {
		_, _ = h.Write([]byte(strings.ToLower(*req.CuisineType)))
	}
	return h.Sum32()
}

// normalizeList lower-cases, trims and de-duplicates, keeping order
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func humanList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
