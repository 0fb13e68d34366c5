package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/neweraservicez/startup-os/internal/domain"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[domain.UserID]*domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[domain.UserID]*domain.User),
	}
}

func (s *UserStore) GetUser(_ context.Context, id domain.UserID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return errors.New("user already exists")
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *UserStore) UpdateUserProfile(_ context.Context, id domain.UserID, name string, picture *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	u.Name = name
	u.Picture = picture
	return nil
}

// DeleteUser exists for tests that need a session pointing at a missing user.
func (s *UserStore) DeleteUser(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// CountByEmail reports how many user records share an email.
func (s *UserStore) CountByEmail(email string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, u := range s.users {
		if u.Email == email {
			n++
		}
	}
	return n
}
