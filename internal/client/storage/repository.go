// Package storage implements the client's durable key-value store: a small
// SQLite-backed repository plus a best-effort facade that never lets a
// storage failure escape to callers.
package storage

import "context"

// Repository is the error-returning contract over the underlying store.
// Higher layers normally use Store instead; Repository exists so persistence
// failures stay observable to anything that wants them.
type Repository interface {
	// Get returns the value for key. ok is false when the key is absent;
	// an absent key is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
