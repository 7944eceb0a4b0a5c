package apiserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	apperrors "github.com/flavorforge/recipeai/pkg/errors"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type generateRequest struct {
	Ingredients         []string `json:"ingredients" validate:"min=1,dive,notblank"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisineType         *string  `json:"cuisine_type"`
	Difficulty          *string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type searchRequest struct {
	Query                string   `json:"query" validate:"notblank"`
	AvailableIngredients []string `json:"available_ingredients"`
	Limit                *int     `json:"limit" validate:"omitempty,min=1,max=50"`
}

func (s *Server) handleGenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !s.decode(w, r, &req) {
		return
	}

	genReq := recipe.GenerationRequest{
		Ingredients:         req.Ingredients,
		DietaryRestrictions: req.DietaryRestrictions,
		CuisineType:         req.CuisineType,
	}
	if req.Difficulty != nil {
		d := recipe.Difficulty(strings.ToLower(*req.Difficulty))
		genReq.Difficulty = &d
	}

	generated, err := s.generator.Generate(genReq)
	if err != nil {
		s.fail(w, r, apperrors.NewBadRequestError("Invalid request: "+err.Error()))
		return
	}
	if err := s.recipes.Create(r.Context(), &generated); err != nil {
		s.fail(w, r, apperrors.Wrap(err, "Recipe generation failed"))
		return
	}

	s.respond(w, http.StatusOK, generated, nil)
}

func (s *Server) handleSearchRecipes(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	all, err := s.recipes.All(r.Context())
	if err != nil {
		s.fail(w, r, apperrors.NewDatabaseError("search recipes", err))
		return
	}

	searchReq := recipe.SearchRequest{
		Query:                req.Query,
		AvailableIngredients: req.AvailableIngredients,
	}
	if req.Limit != nil {
		searchReq.Limit = *req.Limit
	}

	s.respond(w, http.StatusOK, RankRecipes(all, searchReq), nil)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 1 || limit > maxListLimit {
		s.fail(w, r, apperrors.NewValidationError(apperrors.FieldError{
			Field: "limit", Message: "limit must be between 1 and 100",
		}))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		s.fail(w, r, apperrors.NewValidationError(apperrors.FieldError{
			Field: "offset", Message: "offset must not be negative",
		}))
		return
	}

	recipes, total, err := s.recipes.List(r.Context(), limit, offset)
	if err != nil {
		s.fail(w, r, apperrors.NewDatabaseError("list recipes", err))
		return
	}

	count := int(total)
	s.respond(w, http.StatusOK, recipes, &count)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	found, err := s.recipes.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			s.fail(w, r, apperrors.NewNotFoundError("Recipe not found"))
			return
		}
		s.fail(w, r, apperrors.NewDatabaseError("load recipe", err))
		return
	}

	s.respond(w, http.StatusOK, found, nil)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
