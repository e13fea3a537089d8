package legacyfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KeySource = (*KeyFileSource)(nil)

// KeyFileSource loads API keys from the oldest legacy layout: one raw
// single-value file per service, named "<service>_key".
type KeyFileSource struct {
	dir    string
	logger *slog.Logger
}

// NewKeyFileSource creates a KeyFileSource reading from dir.
func NewKeyFileSource(dir string, logger *slog.Logger) *KeyFileSource {
	return &KeyFileSource{dir: dir, logger: logger}
}

// KeyFileName returns the legacy per-service file name, e.g. "anthropic_key".
func KeyFileName(service model.Service) string {
	return string(service) + "_key"
}

// TryLoad reads every per-service key file that exists. Returns
// (nil, nil) when none holds a non-empty value.
func (s *KeyFileSource) TryLoad(_ context.Context) (*model.APIKeys, error) {
	var keys model.APIKeys

	for _, service := range model.Services() {
		path := filepath.Join(s.dir, KeyFileName(service))
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		keys.Set(service, strings.TrimSpace(string(data)))
	}

	if keys.IsEmpty() {
		return nil, nil
	}
	return &keys, nil
}
