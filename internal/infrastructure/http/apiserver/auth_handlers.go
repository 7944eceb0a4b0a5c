package apiserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flavorforge/recipeai/internal/domain/user"
	"github.com/flavorforge/recipeai/internal/infrastructure/http/middleware"
	"github.com/flavorforge/recipeai/internal/infrastructure/security"
	apperrors "github.com/flavorforge/recipeai/pkg/errors"
)

type signupRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.auth.Signup(r.Context(), req.Name, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, security.ErrUserExists) {
			s.fail(w, r, apperrors.NewBadRequestError("User already exists").AsDetail())
			return
		}
		s.fail(w, r, apperrors.Wrap(err, "Failed to create user").AsDetail())
		return
	}

	s.writeJSON(w, http.StatusOK, user.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.auth.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			s.fail(w, r, apperrors.NewUnauthorizedError("Incorrect email or password"))
			return
		}
		s.fail(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, user.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	u, err := s.auth.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, security.ErrInvalidToken) {
			s.fail(w, r, apperrors.NewUnauthorizedError(""))
			return
		}
		s.fail(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, u)
}
