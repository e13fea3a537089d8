// Package application contains the credential-resolution services: the
// key store with its one-time legacy migration, structural and live key
// validation, and change notification.
package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopscribe/credstore/internal/domain/model"
	"github.com/shopscribe/credstore/internal/domain/port/driven"
)

// Store is the authoritative key map for all known services. It is
// constructed once at startup and passed by handle to every consumer.
//
// With durable storage the store loads itself lazily on first access,
// running the legacy migration chain once, and every successful
// mutation persists the full envelope and broadcasts a snapshot.
// Without durable storage (headless process) reads resolve from
// environment variables and every mutation is refused with false.
type Store struct {
	mu        sync.Mutex
	storage   driven.StorageRepo // nil when the context has no durable storage
	canonical *canonicalStore
	loader    *loader
	notifier  *Notifier
	logger    *slog.Logger

	keys   model.APIKeys
	loaded bool
}

// NewStore creates a Store. storage may be nil for environment-only
// contexts; legacy lists the migration tiers in priority order (the
// canonical entry is always consulted first and need not be included).
func NewStore(storage driven.StorageRepo, legacy []driven.KeySource, notifier *Notifier, logger *slog.Logger) *Store {
	s := &Store{
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
	if storage != nil {
		s.canonical = newCanonicalStore(storage, logger)
		s.loader = &loader{canonical: s.canonical, legacy: legacy, logger: logger}
	}
	return s
}

// persistent is the per-call capability probe: does this execution
// context have durable storage?
func (s *Store) persistent() bool {
	return s.storage != nil
}

// ensureLoadedLocked runs the migration chain on first access. The
// loaded flag guarantees storage is read at most once per store
// lifetime. Caller must hold s.mu.
func (s *Store) ensureLoadedLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.keys = s.loader.load(ctx)
	s.loaded = true
}

// Get returns the current key for a service. In an environment-only
// context the in-memory map is ignored and the process environment is
// consulted instead. Never fails; a missing key is "".
func (s *Store) Get(ctx context.Context, service model.Service) string {
	if !s.persistent() {
		return envKey(service)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return s.keys.Get(service)
}

// GetAll returns an independent snapshot of the full key map. In an
// environment-only context the snapshot is assembled from environment
// variables.
func (s *Store) GetAll(ctx context.Context) model.APIKeys {
	if !s.persistent() {
		var keys model.APIKeys
		for _, service := range model.Services() {
			keys.Set(service, envKey(service))
		}
		return keys
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return s.keys
}

// Set stores one key. Returns true only when the change was persisted;
// in an environment-only context it is a no-op returning false.
func (s *Store) Set(ctx context.Context, service model.Service, value string) bool {
	return s.SetAll(ctx, map[model.Service]string{service: value})
}

// SetAll merges only the provided fields into the map, persists the
// full envelope, and broadcasts the post-mutation snapshot.
//
// The in-memory update is the operation's effect; persistence is a
// best-effort side channel. On a persistence failure the memory update
// is kept, subscribers are still notified, and false is returned.
func (s *Store) SetAll(ctx context.Context, partial map[model.Service]string) bool {
	if !s.persistent() {
		s.logger.Debug("key mutation refused: no durable storage in this context")
		return false
	}

	s.mu.Lock()
	s.ensureLoadedLocked(ctx)
	s.keys.Merge(partial)
	snapshot := s.keys
	persistErr := s.canonical.Save(ctx, s.keys)
	s.mu.Unlock()

	if persistErr != nil {
		s.logger.Error("persisting API keys failed, in-memory state retained", "error", persistErr)
	}

	s.notifier.Broadcast(snapshot)
	return persistErr == nil
}

// Remove clears the key for one service. Equivalent to Set(service, "").
func (s *Store) Remove(ctx context.Context, service model.Service) bool {
	return s.Set(ctx, service, "")
}

// Clear empties every key.
func (s *Store) Clear(ctx context.Context) bool {
	partial := make(map[model.Service]string, len(model.Services()))
	for _, service := range model.Services() {
		partial[service] = ""
	}
	return s.SetAll(ctx, partial)
}

// Subscribe registers a callback invoked after every successful
// mutation with a fresh snapshot of the full map.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}
