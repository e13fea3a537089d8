package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// StorageKey is the fixed durable-storage entry name holding the
// canonical versioned key envelope.
const StorageKey = "api_keys"

// Compile-time interface satisfaction check: the canonical entry is
// also tier 1 of the migration chain.
var _ driven.KeySource = (*canonicalStore)(nil)

// canonicalStore reads and writes the current-schema envelope in
// durable storage. Saves always stamp the current schema version,
// regardless of the version that was read.
type canonicalStore struct {
	storage driven.StorageRepo
	logger  *slog.Logger
	now     func() time.Time
}

func newCanonicalStore(storage driven.StorageRepo, logger *slog.Logger) *canonicalStore {
	return &canonicalStore{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// TryLoad reads the canonical envelope. Missing and malformed entries
// both count as "not found"; malformed data is logged, never surfaced.
func (c *canonicalStore) TryLoad(ctx context.Context) (*model.APIKeys, error) {
	raw, found, err := c.storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read canonical key entry: %w", err)
	}
	if !found {
		return nil, nil
	}

	doc, err := model.ParseStoredKeys([]byte(raw))
	if err != nil {
		c.logger.Warn("canonical key entry is malformed, treating as absent", "error", err)
		return nil, nil
	}

	keys := doc.Keys()
	return &keys, nil
}

// Save persists the full key map as a current-version envelope.
func (c *canonicalStore) Save(ctx context.Context, keys model.APIKeys) error {
	doc := model.NewStoredKeys(keys, c.now())

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode canonical key entry: %w", err)
	}
	if err := c.storage.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("write canonical key entry: %w", err)
	}
	return nil
}
