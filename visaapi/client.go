// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package visaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty string means no session: the Authorization header is
// omitted and the request proceeds unauthenticated. The session store
// implements this interface.
type TokenSource interface {
	Token() string
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the base URL of the visa service API
	// (e.g., "https://api.example.com/api").
	BaseURL string
	// Tokens supplies the bearer token. If nil, all requests go out
	// unauthenticated.
	Tokens TokenSource
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client talks to the visa service API. Endpoint wrappers in this
// package are all thin typed layers over doRequest.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("visaapi: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("visaapi: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		tokens:     config.Tokens,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Called on logout so connections opened
// for the authenticated user do not linger.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doRequest performs an HTTP request against the API and returns the
// response body. On 2xx, returns the body (empty for 204). On any
// other status, returns a *HTTPError.
//
// Header precedence is deterministic: Content-Type first, then the
// bearer token when the token source has one, then extraHeaders;
// caller values win on any conflicting key.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any, extraHeaders http.Header) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("visaapi: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("visaapi: failed to create request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range extraHeaders {
		request.Header.Del(key)
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("visaapi: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("visaapi: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if response.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		return responseBody, nil
	}

	return nil, parseError(response.StatusCode, responseBody)
}

// parseError builds the *HTTPError for a non-2xx response. The backend
// reports failures as {"error": ...} or {"message": ...}; anything
// else (HTML error pages, empty bodies) degrades to "HTTP <status>".
func parseError(statusCode int, body []byte) *HTTPError {
	message := fmt.Sprintf("HTTP %d", statusCode)

	var errorBody struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errorBody); err == nil {
		switch {
		case errorBody.Error != "":
			message = errorBody.Error
		case errorBody.Message != "":
			message = errorBody.Message
		}
	}

	return &HTTPError{StatusCode: statusCode, Message: message}
}

// get issues a GET and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return err
	}
	if result == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("visaapi: failed to parse response from %s: %w", path, err)
	}
	return nil
}

// post issues a POST with a JSON body and decodes the JSON response
// into result.
func (c *Client) post(ctx context.Context, path string, requestBody, result any) error {
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, requestBody, nil)
	if err != nil {
		return err
	}
	if result == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("visaapi: failed to parse response from %s: %w", path, err)
	}
	return nil
}
