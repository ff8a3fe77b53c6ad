// Package checkpoint persists the set of already-processed starting
// values so interrupted or repeated runs skip redundant trajectory work.
//
// The contract is deliberately weaker than a database transaction:
// read a recent snapshot before a unit of work, merge newly processed
// values, write the union after. Concurrent writers must never lose
// entries — last-writer-wins truncation is a correctness bug here, not a
// tradeoff — which is why the BadgerDB implementation stores one key per
// value: unions fall out of per-key writes for free.
package checkpoint

import (
	"context"
	"sync"
)

// Set is a set of processed starting values.
type Set map[int64]struct{}

// Union merges other into s.
func (s Set) Union(other Set) {
	for n := range other {
		s[n] = struct{}{}
	}
}

// Contains reports membership.
func (s Set) Contains(n int64) bool {
	_, ok := s[n]
	return ok
}

// Store is the checkpoint collaborator boundary. An absent or empty
// store loads as an empty set, never an error.
type Store interface {
	// Load returns a recent snapshot of the processed set.
	Load(ctx context.Context) (Set, error)

	// Save merges the given values into the store. Entries already
	// present are kept; Save never truncates.
	Save(ctx context.Context, processed Set) error
}

// Memory is an in-process Store for tests and one-shot runs.
type Memory struct {
	mu  sync.Mutex
	set Set
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{set: make(Set)}
}

// Load returns a copy of the current set.
func (m *Memory) Load(_ context.Context) (Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(Set, len(m.set))
	snapshot.Union(m.set)
	return snapshot, nil
}

// Save merges processed into the store.
func (m *Memory) Save(_ context.Context, processed Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set.Union(processed)
	return nil
}
