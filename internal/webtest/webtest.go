// Package webtest holds HTTP helpers shared by the tests of this module.
package webtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leeforge/webresult/json"
	"github.com/leeforge/webresult/response"
)

// Client sends requests to an in-process test server.
type Client struct {
	t      testing.TB
	server *httptest.Server
	client *http.Client
}

// NewClient starts a server for handler; it is closed on test cleanup.
func NewClient(t testing.TB, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &Client{t: t, server: server, client: server.Client()}
}

// URL returns the server base URL.
func (c *Client) URL() string {
	return c.server.URL
}

// Get issues a GET and returns the response with its body read.
func (c *Client) Get(path string, headers map[string]string) (*http.Response, []byte) {
	c.t.Helper()
	return c.Do(http.MethodGet, path, nil, headers)
}

// Post marshals body (unless it is already []byte) and posts it as JSON.
func (c *Client) Post(path string, body any, headers map[string]string) (*http.Response, []byte) {
	c.t.Helper()
	raw, ok := body.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(c.t, err)
	}
	if headers == nil {
		headers = map[string]string{}
	}
	if _, set := headers["Content-Type"]; !set {
		headers["Content-Type"] = "application/json"
	}
	return c.Do(http.MethodPost, path, raw, headers)
}

// Do sends an arbitrary request.
func (c *Client) Do(method, path string, body []byte, headers map[string]string) (*http.Response, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

// Serve runs handler against an httptest.ResponseRecorder.
func Serve(handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// DecodeErrors parses an Error Response body.
func DecodeErrors(t testing.TB, body []byte) response.ErrorResponse {
	t.Helper()
	var out response.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)
	return out
}

// DecodeObject parses a JSON object body.
func DecodeObject(t testing.TB, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", body)
	return out
}
