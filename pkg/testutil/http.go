// Package testutil provides common test utilities for handler and router
// tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewRequest creates a simple HTTP request without a body. The path is parsed
// with url.Parse rather than handed to httptest.NewRequest directly so that
// targets with literal spaces ("/activities/Chess Club/signup") stay valid.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	u, err := url.Parse(path)
	require.NoError(t, err, "invalid request target %q", path)

	req := httptest.NewRequest(method, "/", nil)
	req.URL.Path = u.Path
	req.URL.RawPath = u.RawPath
	req.URL.RawQuery = u.RawQuery
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ReadBody reads the response body as bytes.
func ReadBody(t *testing.T, rr *httptest.ResponseRecorder) []byte {
	t.Helper()
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err, "failed to read response body")
	return body
}

// UnmarshalResponse unmarshals the response body into the target struct.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	body := ReadBody(t, rr)
	var result T
	require.NoError(t, json.Unmarshal(body, &result), "failed to unmarshal response")
	return &result
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertMessageContains asserts a success envelope whose message contains
// each of the given substrings.
func AssertMessageContains(t *testing.T, rr *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	resp := UnmarshalResponse[map[string]string](t, rr)
	message, ok := (*resp)["message"]
	require.True(t, ok, "expected a message envelope, got %s", rr.Body.String())
	for _, sub := range substrings {
		assert.Contains(t, message, sub)
	}
}

// AssertDetailContains asserts an error envelope whose detail contains the
// given substring.
func AssertDetailContains(t *testing.T, rr *httptest.ResponseRecorder, substring string) {
	t.Helper()
	resp := UnmarshalResponse[map[string]string](t, rr)
	detail, ok := (*resp)["detail"]
	require.True(t, ok, "expected a detail envelope, got %s", rr.Body.String())
	assert.Contains(t, detail, substring)
}
