package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

//go:embed games.json
var seedJSON []byte

// MemStore serves the catalog from memory. The default seed is the embedded
// games.json shipped with the binary.
type MemStore struct {
	mu   sync.RWMutex
	list []Product
	byID map[string]Product
}

func NewMemStore() *MemStore {
	products, err := decodeSeed(seedJSON)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded seed is invalid: %v", err))
	}
	return NewMemStoreWith(products)
}

func NewMemStoreWith(products []Product) *MemStore {
	s := &MemStore{
		list: make([]Product, 0, len(products)),
		byID: make(map[string]Product, len(products)),
	}
	for _, p := range products {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.list = append(s.list, p)
		s.byID[p.ID] = p
	}
	return s
}

func decodeSeed(b []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(b, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListSortedByID(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.list))
	copy(out, s.list)

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	return p, ok, nil
}

func (s *MemStore) Genres(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	for _, p := range s.list {
		for _, g := range p.Genre {
			seen[g] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out, nil
}
