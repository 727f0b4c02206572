package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps documents in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Get returns a copy of the user's document.
func (s *MemoryStore) Get(ctx context.Context, userID string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.docs[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(data)
}

// Merge applies fields to the user's document, creating it if needed.
func (s *MemoryStore) Merge(ctx context.Context, userID string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized, err := normalizeFields(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := decode(s.docs[userID])
	if err != nil {
		return err
	}
	if err := applyFields(doc, normalized); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.docs[userID] = data
	return nil
}
