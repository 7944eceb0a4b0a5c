package apiserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/flavorforge/recipeai/pkg/errors"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Data any          `json:"data"`
	Meta envelopeMeta `json:"meta"`
}

type envelopeMeta struct {
	Timestamp string `json:"timestamp"`
	Total     *int   `json:"total,omitempty"`
}

// respond writes data inside the {data, meta} envelope
func (s *Server) respond(w http.ResponseWriter, status int, data any, total *int) {
	s.writeJSON(w, status, envelope{
		Data: data,
		Meta: envelopeMeta{
			Timestamp: s.now().UTC().Format(time.RFC3339Nano),
			Total:     total,
		},
	})
}

// writeJSON writes a bare JSON body
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}

// fail renders err; anything that is not an AppError becomes a 500
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(err, "")
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	apperrors.Render(w, appErr)
}

// decode reads a JSON body into dst and validates it; on failure the
// error response has been written and false is returned
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		apperrors.Render(w, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "body",
			Message: "body must be valid JSON",
		}))
		return false
	}

	if verr := s.validation.Validate(dst); verr != nil {
		apperrors.Render(w, verr)
		return false
	}
	return true
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Recipe AI API",
		"version": s.config.App.Version,
	}, nil)
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	apperrors.Render(w, apperrors.NewNotFoundError("Not found"))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	apperrors.Render(w, apperrors.NewAppError(apperrors.CodeMethodNotAllowed, "Method not allowed"))
}
