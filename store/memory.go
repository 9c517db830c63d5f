package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process adapter for tests and examples. Committed
// records are deep-copied so later mutation by the caller cannot leak in.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[Ref]*Record
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[Ref]*Record),
	}
}

// Commit stores the record reference for ref, or deletes it when rec is nil.
func (s *MemoryStore) Commit(_ context.Context, ref Ref, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec == nil {
		delete(s.records, ref)
		return nil
	}

	cp := *rec
	s.records[ref] = &cp
	return nil
}

// Load returns the committed record for ref, if any.
func (s *MemoryStore) Load(ref Ref) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[ref]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

// Len returns the number of committed references.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
