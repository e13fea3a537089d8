package driven

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned by KeyChecker implementations when the
// provider rejected the key with HTTP 401.
var ErrUnauthorized = errors.New("provider rejected API key")

// StatusError reports a non-2xx, non-401 provider response.
type StatusError struct {
	StatusCode int
}

// Error returns the standard status text for the code, matching what
// validation surfaces to callers ("Too Many Requests", "Forbidden", ...).
func (e *StatusError) Error() string {
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// KeyChecker is the driven port for live key validation. Check issues
// one minimal request to the provider's real endpoint with the given
// key. A nil return means the provider accepted the key (HTTP 2xx);
// ErrUnauthorized means 401; *StatusError any other status; any other
// error is a transport failure.
type KeyChecker interface {
	Check(ctx context.Context, key string) error
}
