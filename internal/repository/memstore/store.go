// Package memstore keeps a revisioned record collection in process memory.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/kailas-cloud/wareflow/internal/domain"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
)

// AnyRevision skips the optimistic concurrency check in Mutate.
const AnyRevision = 0

// Store holds one collection snapshot. Revision starts at 1 and grows by one per committed mutation.
type Store struct {
	name string

	mu       sync.RWMutex
	records  []record.Record
	revision int
}

// New creates a store seeded with records.
func New(name string, records []record.Record) *Store {
	initial := make([]record.Record, len(records))
	copy(initial, records)
	return &Store{name: name, records: initial, revision: 1}
}

// Name returns the collection name.
func (s *Store) Name() string { return s.name }

// Snapshot returns the current collection and its revision.
// The returned slice is a copy; the records themselves are shared and must be treated as immutable.
func (s *Store) Snapshot(ctx context.Context) ([]record.Record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("snapshot %s: %w", s.name, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Record, len(s.records))
	copy(out, s.records)
	return out, s.revision, nil
}

// Mutate replaces the collection with fn's result when expectedRevision matches
// the current revision (or is AnyRevision). Returns the new revision.
// fn runs under the write lock and must not modify current or its records.
// An error from fn leaves the collection and revision unchanged.
func (s *Store) Mutate(
	ctx context.Context, expectedRevision int, fn func(current []record.Record) ([]record.Record, error),
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("mutate %s: %w", s.name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if expectedRevision != AnyRevision && expectedRevision != s.revision {
		return 0, domain.NewRevisionConflict(s.revision)
	}

	current := make([]record.Record, len(s.records))
	copy(current, s.records)

	next, err := fn(current)
	if err != nil {
		return 0, err
	}
	s.records = next
	s.revision++
	return s.revision, nil
}

// Revision returns the current revision.
func (s *Store) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Ping reports whether the store can serve requests.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ping %s: %w", s.name, err)
	}
	return nil
}
