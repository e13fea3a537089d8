// Package driven defines the driven ports of the credential subsystem:
// durable key/value storage, legacy key sources consumed during
// migration, and live key checking against provider endpoints.
package driven

import "context"

// StorageRepo is the driven port for durable key/value persistence.
// Entries are opaque strings keyed by a fixed entry name; the canonical
// key envelope is stored as one JSON document under a single entry.
type StorageRepo interface {
	// Get retrieves the value stored under key. The second return is
	// false when no entry exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores or replaces the value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the entry under key. Deleting a missing entry is
	// not an error.
	Delete(ctx context.Context, key string) error
}
