package memory

import (
	"context"
	"sync"

	"github.com/neweraservicez/startup-os/internal/domain"
)

// MessageStore keeps chat messages per user in insertion order, which is
// also creation order.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[domain.UserID][]*domain.ChatMessage
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[domain.UserID][]*domain.ChatMessage),
	}
}

func (s *MessageStore) AppendMessage(_ context.Context, msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *msg
	s.messages[msg.UserID] = append(s.messages[msg.UserID], &cp)
	return nil
}

func (s *MessageStore) RecentMessages(_ context.Context, userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[userID]
	if limit <= 0 || limit > len(msgs) {
		limit = len(msgs)
	}

	out := make([]*domain.ChatMessage, 0, limit)
	for i := len(msgs) - 1; i >= len(msgs)-limit; i-- {
		cp := *msgs[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MessageStore) ListMessages(_ context.Context, userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[userID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}

	out := make([]*domain.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}
