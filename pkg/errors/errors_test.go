package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	tests := map[ErrorCode]int{
		CodeBadRequest:         http.StatusBadRequest,
		CodeValidationFailed:   http.StatusUnprocessableEntity,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeNotFound:           http.StatusNotFound,
		CodeMethodNotAllowed:   http.StatusMethodNotAllowed,
		CodeConflict:           http.StatusConflict,
		CodeTooManyRequests:    http.StatusTooManyRequests,
		CodeServiceUnavailable: http.StatusServiceUnavailable,
		CodeDatabaseError:      http.StatusInternalServerError,
		CodeInternal:           http.StatusInternalServerError,
	}
	for code, status := range tests {
		assert.Equal(t, status, NewAppError(code, "x").StatusCode(), string(code))
	}
}

func TestWrapAndIs(t *testing.T) {
	notFound := NewNotFoundError("Recipe not found")
	wrapped := fmt.Errorf("lookup: %w", notFound)

	assert.Same(t, notFound, Wrap(wrapped, "ignored"))
	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeConflict))

	internal := Wrap(assert.AnError, "Failed to generate recipe")
	assert.Equal(t, CodeInternal, internal.Code)
	assert.ErrorIs(t, internal, assert.AnError)
	assert.Nil(t, Wrap(nil, "x"))
}

func TestToResponseShapes(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	envelope, err := json.Marshal(ToResponse(NewNotFoundError("Recipe not found"), now))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"message":"Recipe not found","status_code":404,"code":"NOT_FOUND"},"meta":{"timestamp":"2024-05-01T10:00:00Z"}}`, string(envelope))

	detail, err := json.Marshal(ToResponse(NewUnauthorizedError(""), now))
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, string(detail))

	existing, err := json.Marshal(ToResponse(NewBadRequestError("User already exists").AsDetail(), now))
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":"User already exists"}`, string(existing))

	validation, err := json.Marshal(ToResponse(NewValidationError(
		FieldError{Field: "email", Message: "email is required"},
		FieldError{Field: "password", Message: "password is required"},
	), now))
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":[
		{"loc":["body","email"],"msg":"email is required","type":"value_error"},
		{"loc":["body","password"],"msg":"password is required","type":"value_error"}
	]}`, string(validation))
}

func TestRender(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, NewConflictError("User already exists"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User already exists", body.Error.Message)
	assert.Equal(t, http.StatusConflict, body.Error.StatusCode)
	assert.NotEmpty(t, body.Meta.Timestamp)
}
