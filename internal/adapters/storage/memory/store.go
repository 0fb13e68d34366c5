// Package memory is an in-process implementation of every store port.
// It is NOT persistent and is only suitable for development and tests.
package memory

import (
	"context"

	"github.com/neweraservicez/startup-os/internal/domain"
)

// Store bundles the per-collection stores behind domain.Store.
type Store struct {
	*UserStore
	*SessionStore
	*BlueprintStore
	*MessageStore
	*WaitlistStore
}

var _ domain.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		UserStore:      NewUserStore(),
		SessionStore:   NewSessionStore(),
		BlueprintStore: NewBlueprintStore(),
		MessageStore:   NewMessageStore(),
		WaitlistStore:  NewWaitlistStore(),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }
