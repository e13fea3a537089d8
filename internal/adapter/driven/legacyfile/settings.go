// Package legacyfile implements the KeySource port for the storage
// layouts written by releases that predate the canonical envelope:
// the combined settings document, the flat key backup, and per-service
// key files. Each source treats missing or malformed data as "not
// found" so the migration chain always falls through cleanly.
package legacyfile

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// SettingsFileName is the combined application-settings document
// written by older releases. API keys live in its nested apiKeys object.
const SettingsFileName = "settings.json"

// Compile-time interface satisfaction check.
var _ driven.KeySource = (*SettingsSource)(nil)

// SettingsSource loads API keys from the legacy combined settings
// document. The historical openaiApiKey field is an alias for the
// text-generation slot: it fills the Anthropic key only when the direct
// anthropicApiKey field is empty.
type SettingsSource struct {
	dir    string
	logger *slog.Logger
}

// NewSettingsSource creates a SettingsSource reading from dir.
func NewSettingsSource(dir string, logger *slog.Logger) *SettingsSource {
	return &SettingsSource{dir: dir, logger: logger}
}

// settingsDoc mirrors only the part of the legacy settings document this
// subsystem cares about; everything else is ignored.
type settingsDoc struct {
	APIKeys *struct {
		AnthropicAPIKey   string `json:"anthropicApiKey"`
		UnsplashAccessKey string `json:"unsplashAccessKey"`
		OpenAIAPIKey      string `json:"openaiApiKey"`
	} `json:"apiKeys"`
}

// TryLoad extracts the key map from the legacy settings document.
// Returns (nil, nil) when the file is absent, unparseable, or holds no
// non-empty key.
func (s *SettingsSource) TryLoad(_ context.Context) (*model.APIKeys, error) {
	path := filepath.Join(s.dir, SettingsFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var doc settingsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("legacy settings document is malformed, skipping", "path", path, "error", err)
		return nil, nil
	}
	if doc.APIKeys == nil {
		return nil, nil
	}

	keys := model.APIKeys{
		Anthropic: strings.TrimSpace(doc.APIKeys.AnthropicAPIKey),
		Unsplash:  strings.TrimSpace(doc.APIKeys.UnsplashAccessKey),
	}
	if keys.Anthropic == "" {
		keys.Anthropic = strings.TrimSpace(doc.APIKeys.OpenAIAPIKey)
	}

	if keys.IsEmpty() {
		return nil, nil
	}
	return &keys, nil
}
