// Package anthropic implements the KeyChecker port against the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	messagesPath   = "/v1/messages"
	apiVersion     = "2023-06-01"

	// Smallest request that still exercises authentication: one token of
	// output from the cheapest model.
	probeBody = `{"model":"claude-3-haiku-20240307","max_tokens":1,"messages":[{"role":"user","content":"Hi"}]}`
)

// Compile-time interface satisfaction check.
var _ driven.KeyChecker = (*Checker)(nil)

// Checker validates Anthropic API keys by issuing a minimal request to
// the Messages endpoint. Authentication uses the x-api-key header plus
// the fixed anthropic-version header.
type Checker struct {
	httpClient *http.Client
	baseURL    string
}

// NewChecker creates a Checker against the production Anthropic API.
func NewChecker() *Checker {
	return &Checker{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
	}
}

// NewCheckerWithHTTPClient creates a Checker with a custom http.Client and
// base URL. This constructor is intended for testing, allowing injection
// of an httptest server.
func NewCheckerWithHTTPClient(httpClient *http.Client, baseURL string) *Checker {
	return &Checker{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Check issues one minimal Messages request with the given key.
// Returns nil on 2xx, driven.ErrUnauthorized on 401, *driven.StatusError
// on any other status, and the transport error otherwise.
func (c *Checker) Check(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, strings.NewReader(probeBody))
	if err != nil {
		return fmt.Errorf("build anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", key)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return driven.ErrUnauthorized
	default:
		return &driven.StatusError{StatusCode: resp.StatusCode}
	}
}
