package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemStore keeps products in insertion order behind a single-writer lock.
type MemStore struct {
	mu    sync.RWMutex
	items []Product

	newID func() string
}

func NewEmptyMemStore() *MemStore {
	return &MemStore{newID: uuid.NewString}
}

// NewMemStore returns a store seeded with the sample catalog.
func NewMemStore() *MemStore {
	s := NewEmptyMemStore()
	s.items = seedProducts()
	return s
}

func seedProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Laptop",
			Description: "High-performance laptop with 16GB RAM",
			Price:       1200,
			Category:    "electronics",
			InStock:     true,
		},
		{
			ID:          "2",
			Name:        "Smartphone",
			Description: "Latest model with 128GB storage",
			Price:       800,
			Category:    "electronics",
			InStock:     true,
		},
		{
			ID:          "3",
			Name:        "Coffee Maker",
			Description: "Programmable coffee maker with timer",
			Price:       50,
			Category:    "kitchen",
			InStock:     false,
		},
	}
}

func (s *MemStore) Ping(_ context.Context) error { return nil }

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemStore) List(_ context.Context, q ListQuery) (Page, error) {
	q = q.normalize()
	search := strings.ToLower(q.Search)

	s.mu.RLock()
	matched := make([]Product, 0, len(s.items))
	for _, p := range s.items {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.RUnlock()

	start, end := pageBounds(len(matched), q.Page, q.Limit)
	return Page{
		Total: len(matched),
		Page:  q.Page,
		Limit: q.Limit,
		Data:  matched[start:end],
	}, nil
}

func (s *MemStore) Get(_ context.Context, id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}
	return s.items[i], nil
}

func (s *MemStore) Create(_ context.Context, in ProductInput) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}

	p := Product{ID: id}
	in.applyTo(&p)
	s.items = append(s.items, p)
	return p, nil
}

func (s *MemStore) Update(_ context.Context, id string, in ProductInput) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	p := s.items[i]
	in.applyTo(&p)
	s.items[i] = p
	return p, nil
}

func (s *MemStore) Delete(_ context.Context, id string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	p := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return p, nil
}

func (s *MemStore) Stats(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int)
	for _, p := range s.items {
		out[p.Category]++
	}
	return out, nil
}

// indexOf must be called with s.mu held.
func (s *MemStore) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(p Product) bool { return p.ID == id })
}

// pageBounds returns the [start, end) window of a 1-based page over n items.
func pageBounds(n, page, limit int) (int, int) {
	if page < 1 || limit < 1 || page-1 > n/limit {
		return n, n
	}
	start := (page - 1) * limit
	end := n
	if n-start > limit {
		end = start + limit
	}
	return start, end
}
