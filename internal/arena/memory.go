package arena

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a Store backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, rec Record) (uuid.UUID, error) {
	if err := rec.Validate(); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec.Clone()
	return id, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, diff FieldDiff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	s.records[id] = diff.Apply(rec)
	return nil
}
