package model

import (
	"encoding/json"
	"time"
)

// StoredKeysVersion is the current schema version of the canonical
// storage envelope. It is always written on persist, regardless of the
// version that was read.
const StoredKeysVersion = 1

// StoredKeys is the versioned envelope persisted as a single durable
// storage entry. Unknown or newer Version values do not prevent a
// best-effort read of the key fields.
type StoredKeys struct {
	Version           int    `json:"version"`
	AnthropicAPIKey   string `json:"anthropicApiKey"`
	UnsplashAccessKey string `json:"unsplashAccessKey"`
	UpdatedAt         string `json:"updatedAt"`
}

// NewStoredKeys wraps a key map in a current-version envelope stamped
// with the given time.
func NewStoredKeys(keys APIKeys, now time.Time) StoredKeys {
	return StoredKeys{
		Version:           StoredKeysVersion,
		AnthropicAPIKey:   keys.Anthropic,
		UnsplashAccessKey: keys.Unsplash,
		UpdatedAt:         now.UTC().Format(time.RFC3339),
	}
}

// Keys extracts the key map from the envelope.
func (d StoredKeys) Keys() APIKeys {
	return APIKeys{
		Anthropic: d.AnthropicAPIKey,
		Unsplash:  d.UnsplashAccessKey,
	}
}

// ParseStoredKeys decodes a canonical envelope from its JSON form.
func ParseStoredKeys(data []byte) (StoredKeys, error) {
	var doc StoredKeys
	if err := json.Unmarshal(data, &doc); err != nil {
		return StoredKeys{}, err
	}
	return doc, nil
}
