// Package store holds the process-local entity collections. Each store is a
// map guarded by its own RWMutex; entities move across the boundary by value,
// so callers never alias stored state.
package store

import (
	"sync"

	"github.com/google/uuid"

	"shopapi/pkg/domain/model"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
	order []uuid.UUID
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *UserStore) Insert(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; !exists {
		s.order = append(s.order, u.ID)
	}
	s.users[u.ID] = u
}

func (s *UserStore) Get(id uuid.UUID) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

// Put replaces an existing entity, keeping its insertion position.
func (s *UserStore) Put(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; !exists {
		s.order = append(s.order, u.ID)
	}
	s.users[u.ID] = u
}

func (s *UserStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns a snapshot of every user in insertion order.
func (s *UserStore) All() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id])
	}
	return out
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
