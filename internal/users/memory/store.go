package memory

import (
	"context"
	"sync"

	"github.com/dinehub/dinehub/internal/users"
)

// Store is an in-memory user store for local development and tests.
type Store struct {
	mu    sync.RWMutex
	users map[string]users.User
}

func NewStore() *Store {
	return &Store{users: make(map[string]users.User)}
}

// Put seeds or replaces a user.
func (s *Store) Put(u users.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) GetByID(_ context.Context, id string) (*users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	copy := u
	return &copy, nil
}

func (s *Store) UpdateAddress(_ context.Context, id string, addr users.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return users.ErrNotFound
	}
	u.Address = addr
	s.users[id] = u
	return nil
}
