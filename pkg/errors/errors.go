// Package errors provides structured error handling for the stub backend.
// Every AppError renders to one of the three wire shapes the client parses.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	CodeDatabaseError      ErrorCode = "DATABASE_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code    ErrorCode
	Message string
	// Fields holds per-field validation messages; rendered as detail entries
	Fields []FieldError
	Cause  error

	detail bool
}

// FieldError is one failed validation rule
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// AsDetail renders the error as a bare {"detail": message} body
func (e *AppError) AsDetail() *AppError {
	e.detail = true
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message)
}

// NewValidationError creates a validation error for one or more fields
func NewValidationError(fields ...FieldError) *AppError {
	return &AppError{Code: CodeValidationFailed, Message: "Validation failed", Fields: fields}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Could not validate credentials"
	}
	return NewAppError(CodeUnauthorized, message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return NewAppError(CodeNotFound, message)
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return NewAppError(CodeConflict, message)
}

// NewTooManyRequestsError creates a rate limit error
func NewTooManyRequestsError() *AppError {
	return NewAppError(CodeTooManyRequests, "Rate limit exceeded")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message)
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(CodeDatabaseError, fmt.Sprintf("Failed to %s", operation)).WithCause(cause)
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ErrorResponse is the standard error envelope:
// {"error": {"message", "status_code"}, "meta": {"timestamp"}}
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
	Meta  ErrorMeta    `json:"meta"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Code       ErrorCode `json:"code,omitempty"`
}

// ErrorMeta carries the response timestamp
type ErrorMeta struct {
	Timestamp string `json:"timestamp"`
}

// DetailResponse is the {"detail": "..."} shape used for auth failures
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ValidationResponse is the {"detail": [{"loc", "msg", "type"}]} shape
type ValidationResponse struct {
	Detail []ValidationDetail `json:"detail"`
}

// ValidationDetail is a single failed field
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ToResponse picks the wire shape for err: validation errors as a detail
// list, auth failures and AsDetail errors as a detail string, everything
// else as the envelope
func ToResponse(err *AppError, now time.Time) any {
	switch {
	case err.Code == CodeValidationFailed && len(err.Fields) > 0:
		details := make([]ValidationDetail, 0, len(err.Fields))
		for _, f := range err.Fields {
			details = append(details, ValidationDetail{
				Loc:  []string{"body", f.Field},
				Msg:  f.Message,
				Type: "value_error",
			})
		}
		return ValidationResponse{Detail: details}
	case err.Code == CodeUnauthorized || err.detail:
		return DetailResponse{Detail: err.Message}
	default:
		return ErrorResponse{
			Error: ErrorDetails{
				Message:    err.Message,
				StatusCode: err.StatusCode(),
				Code:       err.Code,
			},
			Meta: ErrorMeta{Timestamp: now.UTC().Format(time.RFC3339Nano)},
		}
	}
}

// Render writes err to w in its wire shape
func Render(w http.ResponseWriter, err *AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode())
	_ = json.NewEncoder(w).Encode(ToResponse(err, time.Now()))
}
