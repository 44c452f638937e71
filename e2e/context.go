package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TestContext carries HTTP state across steps in a scenario: the server base
// URL, the last response, and its decoded body.
type TestContext struct {
	baseURL string
	client  *http.Client

	lastStatus int
	lastBody   []byte
	lastJSON   map[string]interface{}
}

// NewTestContext builds a context pointed at a running server.
func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears response state between scenarios.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastJSON = nil
}

// GET performs a GET request against the server.
func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path)
}

// POST performs a POST request against the server. The activities API takes
// its inputs from the path and query string, so no body is sent.
func (tc *TestContext) POST(path string) error {
	return tc.do(http.MethodPost, path)
}

// DELETE performs a DELETE request against the server.
func (tc *TestContext) DELETE(path string) error {
	return tc.do(http.MethodDelete, path)
}

func (tc *TestContext) do(method, path string) error {
	req, err := http.NewRequest(method, tc.baseURL+path, nil)
	if err != nil {
		return err
	}

	// Redirects are under test themselves, so never follow them.
	tc.client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	tc.lastJSON = nil
	if len(body) > 0 {
		var decoded map[string]interface{}
		if err := json.Unmarshal(body, &decoded); err == nil {
			tc.lastJSON = decoded
		}
	}
	return nil
}

// GetLastResponseStatus returns the status code of the last response.
func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

// GetLastResponseBody returns the raw body of the last response.
func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

// GetResponseField returns a top-level field from the last JSON response.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	if tc.lastJSON == nil {
		return nil, fmt.Errorf("last response was not a JSON object: %s", tc.lastBody)
	}
	value, ok := tc.lastJSON[field]
	if !ok {
		return nil, fmt.Errorf("field %q not present in response: %s", field, tc.lastBody)
	}
	return value, nil
}
