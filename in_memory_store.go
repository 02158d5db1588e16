package alist

import (
	"context"
	"fmt"
	"sync"
)

type inMemoryStore struct {
	entries map[string][]byte
	mu      sync.Mutex
}

// NewInMemoryStore provides a Persist that keeps serialized nodes in
// a map, usually for testing.
func NewInMemoryStore() Persist {
	return &inMemoryStore{}
}

func (s *inMemoryStore) Store(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = map[string][]byte{}
	}
	s.entries[name] = data
	return nil
}

func (s *inMemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	data, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("inMemoryStore entry not found for %s", name)
	}
	return data, nil
}
