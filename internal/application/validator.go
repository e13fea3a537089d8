package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// Validator performs two-stage key validation: the structural format
// check first, then one minimal live request to the provider. It reads
// the store but never mutates it, and it never returns an error; every
// failure mode collapses into the ValidationResult message.
type Validator struct {
	store    *Store
	checkers map[model.Service]driven.KeyChecker
	logger   *slog.Logger
}

// NewValidator creates a Validator over the given store and per-service
// checkers.
func NewValidator(store *Store, checkers map[model.Service]driven.KeyChecker, logger *slog.Logger) *Validator {
	return &Validator{
		store:    store,
		checkers: checkers,
		logger:   logger,
	}
}

// Validate checks the given key for a service, or the store's current
// key when none is supplied. An empty key and a format failure are both
// reported without any network call.
func (v *Validator) Validate(ctx context.Context, service model.Service, key ...string) model.ValidationResult {
	var candidate string
	if len(key) > 0 {
		candidate = key[0]
	} else {
		candidate = v.store.Get(ctx, service)
	}
	candidate = strings.TrimSpace(candidate)

	if candidate == "" {
		return model.ValidationResult{IsValid: false, Message: "No API key provided", Provider: service}
	}
	if !ValidateFormat(service, candidate) {
		return model.ValidationResult{IsValid: false, Message: FormatProblem(service), Provider: service}
	}

	checker, ok := v.checkers[service]
	if !ok {
		return model.ValidationResult{IsValid: false, Message: "No checker configured for " + service.DisplayName(), Provider: service}
	}

	err := checker.Check(ctx, candidate)
	switch {
	case err == nil:
		return model.ValidationResult{IsValid: true, Message: service.DisplayName() + " API key is valid", Provider: service}
	case errors.Is(err, driven.ErrUnauthorized):
		return model.ValidationResult{IsValid: false, Message: "Invalid API key", Provider: service}
	}

	var statusErr *driven.StatusError
	if errors.As(err, &statusErr) {
		return model.ValidationResult{IsValid: false, Message: statusErr.Error(), Provider: service}
	}

	v.logger.Warn("key validation request failed", "service", service, "error", err)
	return model.ValidationResult{IsValid: false, Message: "Network error during validation", Provider: service}
}
