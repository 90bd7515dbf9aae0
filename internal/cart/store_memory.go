package cart

import (
	"context"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string][]Item
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string][]Item{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Load(ctx context.Context, cartID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.m[cartID]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemStore) Save(ctx context.Context, cartID string, items []Item) error {
	cp := make([]Item, len(items))
	copy(cp, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[cartID] = cp
	return nil
}
