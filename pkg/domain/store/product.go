package store

import (
	"sync"

	"github.com/google/uuid"

	"shopapi/pkg/domain/model"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]model.Product
	order    []uuid.UUID
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]model.Product)}
}

func (s *ProductStore) Insert(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p
}

func (s *ProductStore) Get(id uuid.UUID) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok
}

func (s *ProductStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns a snapshot of every product in insertion order.
func (s *ProductStore) All() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}

func (s *ProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
