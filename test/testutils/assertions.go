// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// EnvelopeMeta mirrors the meta block of a success or error response
type EnvelopeMeta struct {
	Timestamp string `json:"timestamp"`
	Total     *int   `json:"total,omitempty"`
}

// DecodeEnvelope asserts a JSON {data, meta} body and returns its data
func DecodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) (T, EnvelopeMeta) {
	t.Helper()
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Data T            `json:"data"`
		Meta EnvelopeMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	assert.NotEmpty(t, body.Meta.Timestamp, "envelope must carry meta.timestamp")
	return body.Data, body.Meta
}

// AssertErrorEnvelope asserts the {error: {message, status_code}, meta} shape
func AssertErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())

	var body struct {
		Error struct {
			Message    string `json:"message"`
			StatusCode int    `json:"status_code"`
		} `json:"error"`
		Meta EnvelopeMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, status, body.Error.StatusCode)
	if message != "" {
		assert.Equal(t, message, body.Error.Message)
	}
	assert.NotEmpty(t, body.Meta.Timestamp)
}

// AssertDetail asserts a {detail: "..."} body
func AssertDetail(t *testing.T, rec *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, detail, body.Detail)
}
