// Package unsplash implements the KeyChecker port against the Unsplash
// API.
package unsplash

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

const (
	defaultBaseURL  = "https://api.unsplash.com"
	randomPhotoPath = "/photos/random"
)

// Compile-time interface satisfaction check.
var _ driven.KeyChecker = (*Checker)(nil)

// Checker validates Unsplash access keys with a single random-photo
// request authenticated via the Client-ID authorization scheme.
type Checker struct {
	httpClient *http.Client
	baseURL    string
}

// NewChecker creates a Checker against the production Unsplash API.
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

// Check issues one random-photo request with the given key.
// Returns nil on 2xx, driven.ErrUnauthorized on 401, *driven.StatusError
// on any other status, and the transport error otherwise.
func (c *Checker) Check(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+randomPhotoPath, nil)
	if err != nil {
		return fmt.Errorf("build unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unsplash request: %w", err)
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
