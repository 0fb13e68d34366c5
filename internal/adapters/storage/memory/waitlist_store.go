package memory

import (
	"context"
	"sync"

	"github.com/neweraservicez/startup-os/internal/domain"
)

type WaitlistStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.WaitlistEntry
}

func NewWaitlistStore() *WaitlistStore {
	return &WaitlistStore{
		entries: make(map[string]*domain.WaitlistEntry),
	}
}

func (s *WaitlistStore) FindWaitlistEntry(_ context.Context, email string) (*domain.WaitlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *WaitlistStore) AddWaitlistEntry(_ context.Context, entry *domain.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	s.entries[entry.Email] = &cp
	return nil
}

// Len returns the number of entries.
func (s *WaitlistStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
