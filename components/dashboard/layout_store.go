package dashboard

import (
	"bytes"
	"context"
	"sync"
)

// InMemoryLayoutStore keeps serialized dashboards in process memory.
type InMemoryLayoutStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewInMemoryLayoutStore creates an empty layout store.
func NewInMemoryLayoutStore() *InMemoryLayoutStore {
	return &InMemoryLayoutStore{
		data: make(map[string][]byte),
	}
}

// LoadLayout returns a copy of the stored blob.
func (s *InMemoryLayoutStore) LoadLayout(_ context.Context, userID string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.data[userID]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(blob), true, nil
}

// SaveLayout replaces the blob for the user.
func (s *InMemoryLayoutStore) SaveLayout(_ context.Context, userID string, blob []byte) error {
	if userID == "" {
		return ErrMissingViewer
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = bytes.Clone(blob)
	return nil
}
