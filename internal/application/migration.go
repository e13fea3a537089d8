package application

import (
	"context"
	"log/slog"

	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// loader walks the migration chain exactly once per store lifetime.
// Tier 1 is the canonical envelope; the legacy tiers follow in fixed
// priority order. The first tier that yields keys wins in its entirety;
// tiers are never merged.
type loader struct {
	canonical *canonicalStore
	legacy    []driven.KeySource
	logger    *slog.Logger
}

// load resolves the initial key map. When a legacy tier wins, its keys
// are immediately written to the canonical entry so future starts hit
// tier 1 directly. Nothing found yields the all-empty map.
func (l *loader) load(ctx context.Context) model.APIKeys {
	keys, err := l.canonical.TryLoad(ctx)
	if err != nil {
		l.logger.Warn("canonical key entry unavailable", "error", err)
	}
	if keys != nil {
		return *keys
	}

	for i, source := range l.legacy {
		keys, err := source.TryLoad(ctx)
		if err != nil {
			l.logger.Warn("legacy key source failed, trying next tier", "tier", i+2, "error", err)
			continue
		}
		if keys == nil {
			continue
		}

		if err := l.canonical.Save(ctx, *keys); err != nil {
			l.logger.Warn("migrating legacy keys to canonical storage failed", "tier", i+2, "error", err)
		} else {
			l.logger.Info("migrated legacy API keys to canonical storage", "tier", i+2)
		}
		return *keys
	}

	return model.APIKeys{}
}
