package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Entity is any record with a unique identifier within its collection.
type Entity interface {
	EntityID() string
}

// Store is a persisted collection of one entity type. Every operation is a
// whole-collection read-modify-write against the backend; the mutex
// serializes writers so two concurrent mutations to the same collection
// cannot lose each other's changes. Mutations to different collections are
// independent.
//
// Reads fail closed: GetAll degrades an unreadable blob to an empty
// collection with a logged warning, and a malformed record inside an
// otherwise readable blob is skipped. Mutations are stricter: Add, Update
// and Remove return the read error instead of rewriting a collection they
// could not load, so a transient backend failure cannot truncate stored
// records. Clear overwrites unconditionally.
type Store[T Entity] struct {
	mu      sync.Mutex
	backend Backend
	key     string
}

func NewStore[T Entity](backend Backend, key string) *Store[T] {
	return &Store[T]{backend: backend, key: key}
}

// Key returns the backend key this collection persists under.
func (s *Store[T]) Key() string { return s.key }

// GetAll returns every record in insertion order.
func (s *Store[T]) GetAll(ctx context.Context) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		slog.Warn("failed to read collection, treating as empty",
			"key", s.key,
			"error", err,
		)
		return nil
	}
	return items
}

// Add appends item and persists the collection. The stored item is
// returned unchanged.
func (s *Store[T]) Add(ctx context.Context, item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return item, err
	}
	items = append(items, item)
	if err := s.persist(ctx, items); err != nil {
		return item, err
	}
	return item, nil
}

// Update applies apply to the record with the given id and persists the
// collection. It reports whether the id was found; an absent id is a
// no-op.
func (s *Store[T]) Update(ctx context.Context, id string, apply func(*T)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].EntityID() == id {
			apply(&items[i])
			return true, s.persist(ctx, items)
		}
	}
	return false, nil
}

// Remove filters the id out and persists. An absent id is a no-op.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.persist(ctx, kept)
}

// Clear persists an empty collection.
func (s *Store[T]) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, nil)
}

// load must be called with the mutex held. A backend read failure is
// returned to the caller; a blob that reads but does not decode is a data
// problem, not an IO problem, and degrades per decodeRecords.
func (s *Store[T]) load(ctx context.Context) ([]T, error) {
	blob, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", s.key, err)
	}
	if len(blob) == 0 {
		return nil, nil
	}
	return decodeRecords[T](s.key, blob), nil
}

// persist must be called with the mutex held.
func (s *Store[T]) persist(ctx context.Context, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", s.key, err)
	}
	if err := s.backend.Put(ctx, s.key, blob); err != nil {
		return fmt.Errorf("failed to persist collection %s: %w", s.key, err)
	}
	return nil
}

// decodeRecords decodes a collection blob record by record so one
// malformed element does not discard the rest. A blob that is not a JSON
// array at all yields an empty collection.
func decodeRecords[T Entity](key string, blob []byte) []T {
	var raw []json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		slog.Warn("corrupted collection blob, treating as empty",
			"key", key,
			"error", err,
		)
		return nil
	}

	items := make([]T, 0, len(raw))
	for i, msg := range raw {
		var item T
		if err := json.Unmarshal(msg, &item); err != nil {
			slog.Warn("skipping malformed record",
				"key", key,
				"index", i,
				"error", err,
			)
			continue
		}
		items = append(items, item)
	}
	return items
}
