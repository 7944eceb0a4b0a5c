package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// User-facing messages for failures that never reached the backend
const (
	MsgConnectionFailed = "Unable to connect to the server. Please check your connection and try again."
	MsgTimeout          = "The server took too long to respond. Please try again."
	MsgCancelled        = "The request was cancelled."
	MsgDefaultError     = "An error occurred"
)

// APIError is the single error type returned for any failed request.
// StatusCode is 0 when the request never got an HTTP response.
type APIError struct {
	StatusCode int
	Message    string
	Timestamp  string
	Cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// UserMessage returns the message without the status suffix
func (e *APIError) UserMessage() string {
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsTransport reports whether the request failed before any response
func (e *APIError) IsTransport() bool {
	return e.StatusCode == 0
}

// AsAPIError extracts an *APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an APIError with the given status code
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == status
}

// IsUnauthorized reports whether err is a 401 from the backend
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// errorBody covers the error envelopes the backend is known to produce:
// {error: {message, status_code}, meta}, {detail: string | [{msg}]},
// {message} and the bare {error: "..."} used by simpler handlers.
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Meta    *struct {
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
}

type nestedError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

// parseErrorBody builds the APIError for a non-2xx response
func parseErrorBody(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = MsgDefaultError
		apiErr.Cause = err
		return apiErr
	}
	if body.Meta != nil {
		apiErr.Timestamp = body.Meta.Timestamp
	}

	var nested nestedError
	if len(body.Error) > 0 {
		if err := json.Unmarshal(body.Error, &nested); err != nil {
			var plain string
			if json.Unmarshal(body.Error, &plain) == nil {
				nested.Message = plain
			}
		}
	}
	if nested.StatusCode > 0 {
		apiErr.StatusCode = nested.StatusCode
	}

	switch {
	case nested.Message != "":
		apiErr.Message = nested.Message
	case detailMessage(body.Detail) != "":
		apiErr.Message = detailMessage(body.Detail)
	case body.Message != "":
		apiErr.Message = body.Message
	default:
		apiErr.Message = MsgDefaultError
	}
	return apiErr
}

// detailMessage reads a detail field that is either a string or a list of
// validation entries carrying a msg
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var entries []validationDetail
	if err := json.Unmarshal(raw, &entries); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Msg != "" {
			msgs = append(msgs, e.Msg)
		}
	}
	return strings.Join(msgs, ", ")
}

// newTransportError normalises a failed round trip into an APIError with
// status 0, separating "cannot reach the server" from other failures
func newTransportError(err error) *APIError {
	apiErr := &APIError{StatusCode: 0, Cause: err}

	var netErr net.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError

	switch {
	case errors.Is(err, context.Canceled):
		apiErr.Message = MsgCancelled
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		apiErr.Message = MsgTimeout
	case errors.As(err, &dnsErr), errors.As(err, &opErr), errors.Is(err, syscall.ECONNREFUSED):
		apiErr.Message = MsgConnectionFailed
	default:
		apiErr.Message = fmt.Sprintf("Network error: %v", err)
	}
	return apiErr
}
