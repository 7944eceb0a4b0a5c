package apiserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/infrastructure/http/middleware"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	apperrors "github.com/flavorforge/recipeai/pkg/errors"
)

type addItemRequest struct {
	IngredientName string  `json:"ingredient_name" validate:"notblank"`
	Quantity       *string `json:"quantity"`
}

type removeItemResponse struct {
	Deleted        bool   `json:"deleted"`
	IngredientName string `json:"ingredient_name"`
}

// inventoryOwner is the signed-in user, or the shared default user
func inventoryOwner(r *http.Request) string {
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		return userID
	}
	return inventory.DefaultUserID
}

func (s *Server) handleGetInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := s.inventory.Get(r.Context(), inventoryOwner(r))
	if err != nil {
		s.fail(w, r, apperrors.NewDatabaseError("load inventory", err))
		return
	}
	s.respond(w, http.StatusOK, inv, nil)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !s.decode(w, r, &req) {
		return
	}

	var quantity *string
	if req.Quantity != nil && strings.TrimSpace(*req.Quantity) != "" {
		q := strings.TrimSpace(*req.Quantity)
		quantity = &q
	}

	item, err := s.inventory.Upsert(r.Context(), inventoryOwner(r), inventory.AddItemRequest{
		IngredientName: req.IngredientName,
		Quantity:       quantity,
	})
	if err != nil {
		s.fail(w, r, apperrors.NewDatabaseError("add item", err))
		return
	}
	s.respond(w, http.StatusOK, item, nil)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	err := s.inventory.Remove(r.Context(), inventoryOwner(r), name)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			s.fail(w, r, apperrors.NewNotFoundError(fmt.Sprintf("Item '%s' not found in inventory", name)))
			return
		}
		s.fail(w, r, apperrors.NewDatabaseError("remove item", err))
		return
	}

	s.respond(w, http.StatusOK, removeItemResponse{Deleted: true, IngredientName: name}, nil)
}

func (s *Server) handleMatchRecipes(w http.ResponseWriter, r *http.Request) {
	inv, err := s.inventory.Get(r.Context(), inventoryOwner(r))
	if err != nil {
		s.fail(w, r, apperrors.NewDatabaseError("load inventory", err))
		return
	}

	all, err := s.recipes.All(r.Context())
	if err != nil {
		s.fail(w, r, apperrors.NewDatabaseError("load recipes", err))
		return
	}

	s.respond(w, http.StatusOK, MatchRecipes(inv, all), nil)
}
