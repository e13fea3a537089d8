package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopscribe/credstore/internal/adapter/driven/anthropic"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// newTestChecker creates a Checker backed by the given httptest handler.
func newTestChecker(t *testing.T, handler http.Handler) *anthropic.Checker {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return anthropic.NewCheckerWithHTTPClient(server.Client(), server.URL)
}

func TestCheck_ValidKey(t *testing.T) {
	var gotMethod, gotKey, gotVersion string
	var gotBody map[string]any

	checker := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))

	err := checker.Check(context.Background(), "sk-ant-test-key")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "sk-ant-test-key", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.EqualValues(t, 1, gotBody["max_tokens"])
}

func TestCheck_Unauthorized(t *testing.T) {
	checker := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := checker.Check(context.Background(), "sk-ant-bad-key")

	assert.ErrorIs(t, err, driven.ErrUnauthorized)
}

func TestCheck_OtherStatus(t *testing.T) {
	checker := newTestChecker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	err := checker.Check(context.Background(), "sk-ant-key")

	var statusErr *driven.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "Too Many Requests", statusErr.Error())
}

func TestCheck_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	checker := anthropic.NewCheckerWithHTTPClient(server.Client(), server.URL)
	server.Close()

	err := checker.Check(context.Background(), "sk-ant-key")

	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrUnauthorized)
	var statusErr *driven.StatusError
	assert.False(t, errors.As(err, &statusErr))
}
