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

// BackupFileName is the session-scoped key backup written by older
// releases: a flat document with one field per service.
const BackupFileName = "keys_backup.json"

// Compile-time interface satisfaction check.
var _ driven.KeySource = (*BackupSource)(nil)

// BackupSource loads API keys from the legacy flat backup document.
type BackupSource struct {
	dir    string
	logger *slog.Logger
}

// NewBackupSource creates a BackupSource reading from dir.
func NewBackupSource(dir string, logger *slog.Logger) *BackupSource {
	return &BackupSource{dir: dir, logger: logger}
}

type backupDoc struct {
	AnthropicAPIKey   string `json:"anthropicApiKey"`
	UnsplashAccessKey string `json:"unsplashAccessKey"`
}

// TryLoad reads the flat backup document. Returns (nil, nil) when the
// file is absent, unparseable, or holds no non-empty key.
func (s *BackupSource) TryLoad(_ context.Context) (*model.APIKeys, error) {
	path := filepath.Join(s.dir, BackupFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var doc backupDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("legacy key backup is malformed, skipping", "path", path, "error", err)
		return nil, nil
	}

	keys := model.APIKeys{
		Anthropic: strings.TrimSpace(doc.AnthropicAPIKey),
		Unsplash:  strings.TrimSpace(doc.UnsplashAccessKey),
	}
	if keys.IsEmpty() {
		return nil, nil
	}
	return &keys, nil
}
