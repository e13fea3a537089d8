package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopscribe/credstore/internal/application"
	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// mockChecker is a canned KeyChecker that records how often it was hit.
type mockChecker struct {
	err    error
	called int
	gotKey string
}

func (m *mockChecker) Check(_ context.Context, key string) error {
	m.called++
	m.gotKey = key
	return m.err
}

func newValidator(store *application.Store, anthropicChecker, unsplashChecker driven.KeyChecker) *application.Validator {
	return application.NewValidator(store, map[model.Service]driven.KeyChecker{
		model.ServiceAnthropic: anthropicChecker,
		model.ServiceUnsplash:  unsplashChecker,
	}, testLogger())
}

func validAnthropicKey() string {
	return "sk-ant-" + strings.Repeat("a", 20)
}

func TestValidate_EmptyKeyShortCircuits(t *testing.T) {
	checker := &mockChecker{}
	validator := newValidator(newStore(newMockStorage()), checker, checker)

	result := validator.Validate(context.Background(), model.ServiceAnthropic)

	assert.Equal(t, model.ValidationResult{
		IsValid:  false,
		Message:  "No API key provided",
		Provider: model.ServiceAnthropic,
	}, result)
	assert.Equal(t, 0, checker.called)
}

func TestValidate_FormatFailureShortCircuits(t *testing.T) {
	checker := &mockChecker{}
	validator := newValidator(newStore(newMockStorage()), checker, checker)

	result := validator.Validate(context.Background(), model.ServiceAnthropic, "not-an-anthropic-key")

	assert.False(t, result.IsValid)
	assert.Equal(t, "Invalid Anthropic API key format", result.Message)
	assert.Equal(t, model.ServiceAnthropic, result.Provider)
	assert.Equal(t, 0, checker.called)
}

func TestValidate_AcceptedKey(t *testing.T) {
	checker := &mockChecker{}
	validator := newValidator(newStore(newMockStorage()), checker, checker)

	result := validator.Validate(context.Background(), model.ServiceAnthropic, validAnthropicKey())

	assert.True(t, result.IsValid)
	assert.Equal(t, "Anthropic API key is valid", result.Message)
	assert.Equal(t, 1, checker.called)
	assert.Equal(t, validAnthropicKey(), checker.gotKey)
}

func TestValidate_UnauthorizedKey(t *testing.T) {
	checker := &mockChecker{err: driven.ErrUnauthorized}
	validator := newValidator(newStore(newMockStorage()), checker, checker)

	result := validator.Validate(context.Background(), model.ServiceUnsplash, strings.Repeat("u", 24))

	assert.False(t, result.IsValid)
	assert.Equal(t, "Invalid API key", result.Message)
	assert.Equal(t, model.ServiceUnsplash, result.Provider)
}

func TestValidate_OtherStatusSurfacesStatusText(t *testing.T) {
	checker := &mockChecker{err: &driven.StatusError{StatusCode: 429}}
	validator := newValidator(newStore(newMockStorage()), checker, checker)

	result := validator.Validate(context.Background(), model.ServiceUnsplash, strings.Repeat("u", 24))

	assert.False(t, result.IsValid)
	assert.Equal(t, "Too Many Requests", result.Message)
}

func TestValidate_TransportError(t *testing.T) {
	checker := &mockChecker{err: errors.New("dial tcp: connection refused")}
	validator := newValidator(newStore(newMockStorage()), checker, checker)

	result := validator.Validate(context.Background(), model.ServiceAnthropic, validAnthropicKey())

	assert.False(t, result.IsValid)
	assert.Equal(t, "Network error during validation", result.Message)
}

func TestValidate_ResolvesStoredKeyWhenNoneSupplied(t *testing.T) {
	store := newStore(newMockStorage())
	stored := validAnthropicKey()
	store.Set(context.Background(), model.ServiceAnthropic, stored)

	checker := &mockChecker{}
	validator := newValidator(store, checker, checker)

	result := validator.Validate(context.Background(), model.ServiceAnthropic)

	assert.True(t, result.IsValid)
	assert.Equal(t, stored, checker.gotKey)
}

func TestValidate_SuppliedKeyOverridesStored(t *testing.T) {
	store := newStore(newMockStorage())
	store.Set(context.Background(), model.ServiceAnthropic, "sk-ant-"+strings.Repeat("s", 20))

	checker := &mockChecker{}
	validator := newValidator(store, checker, checker)
	override := "sk-ant-" + strings.Repeat("o", 20)

	validator.Validate(context.Background(), model.ServiceAnthropic, override)

	assert.Equal(t, override, checker.gotKey)
}
