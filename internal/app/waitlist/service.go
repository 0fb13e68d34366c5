package waitlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

// Service holds the logic of joining the waitlist
type Service struct {
	store domain.WaitlistStore
	now   func() time.Time
}

// NewService creates a waitlist service from a WaitlistStore
func NewService(store domain.WaitlistStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Join adds the email to the waitlist. An email already present returns the
// existing entry and created=false.
func (s *Service) Join(ctx context.Context, email string, name *string) (entry *domain.WaitlistEntry, created bool, err error) {
	if strings.TrimSpace(email) == "" {
		return nil, false, &domain.InvalidInputError{Field: "email", Reason: "is required"}
	}

	existing, err := s.store.FindWaitlistEntry(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	entry = &domain.WaitlistEntry{
		ID:        domain.NewWaitlistID(),
		Email:     email,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.store.AddWaitlistEntry(ctx, entry); err != nil {
		return nil, false, err
	}

	observability.LoggerFromContext(ctx).Info("waitlist joined", "entry_id", entry.ID)
	return entry, true, nil
}
