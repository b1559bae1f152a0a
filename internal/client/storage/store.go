package storage

import (
	"context"

	"github.com/vistaran/helpdesk/internal/logging"
)

// Store is the best-effort facade every other component talks to. Any
// repository failure is logged and swallowed: readers get the zero value,
// writers proceed as if the write happened. The primary user action must
// never be blocked by local persistence trouble.
type Store struct {
	repo Repository
	log  logging.Logger
}

func NewStore(repo Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "storage")}
}

// Get returns the stored value, or ok=false when the key is absent or the
// store is unavailable.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "read failed, treating value as absent", "key", key, "err", err)
		return "", false
	}
	return value, ok
}

// Set persists value under key, best-effort.
func (s *Store) Set(ctx context.Context, key, value string) {
	if err := s.repo.Set(ctx, key, value); err != nil {
		s.log.Warn(ctx, "write failed, continuing without persistence", "key", key, "err", err)
	}
}

// Remove deletes key, best-effort.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "delete failed, continuing", "key", key, "err", err)
	}
}
