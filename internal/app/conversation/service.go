// Package conversation runs the mentor chat: it records every turn and asks
// the model for advice with recent history as context.
package conversation

import (
	"context"
	"slices"
	"time"

	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

const (
	historyWindow = 10
	historyLimit  = 100

	mentorTemperature = 0.7
	mentorMaxTokens   = 1000
)

type Service struct {
	llm          domain.LLMClient
	messageStore domain.ChatStore
	now          func() time.Time
}

func NewService(llm domain.LLMClient, messageStore domain.ChatStore) *Service {
	return &Service{
		llm:          llm,
		messageStore: messageStore,
		now:          time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type SendMessageInput struct {
	UserID  domain.UserID
	Text    string
	Context string
}

type SendMessageOutput struct {
	UserMessage      *domain.ChatMessage
	AssistantMessage *domain.ChatMessage
}

// SendMessage stores the user's message before anything else. If generation
// fails that message stays stored and no assistant message is added.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)

	userMsg := &domain.ChatMessage{
		ID:        domain.NewMessageID(),
		UserID:    in.UserID,
		Role:      domain.RoleUser,
		Content:   in.Text,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	recent, err := s.messageStore.RecentMessages(ctx, in.UserID, historyWindow)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}
	slices.Reverse(recent)

	// The newest entry is the message just stored.
	prior := recent
	if len(prior) > 0 {
		prior = prior[:len(prior)-1]
	}

	replyText, err := s.llm.Generate(ctx, domain.Completion{
		System:      mentorSystemPrompt,
		Prompt:      BuildMentorPrompt(prior, in.Text, in.Context),
		Temperature: mentorTemperature,
		MaxTokens:   mentorMaxTokens,
	})
	if err != nil {
		log.Error("Mentor chat error", "error", err)
		return nil, &domain.GenerationError{Err: err}
	}

	assistantMsg := &domain.ChatMessage{
		ID:        domain.NewMessageID(),
		UserID:    in.UserID,
		Role:      domain.RoleAssistant,
		Content:   replyText,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(ctx, assistantMsg); err != nil {
		log.Error("failed to append assistant message", "error", err)
		return nil, err
	}

	log.Info("mentor reply sent", "history_turns", len(prior))

	return &SendMessageOutput{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// History returns the user's chat in chronological order, capped at 100 messages.
func (s *Service) History(ctx context.Context, userID domain.UserID) ([]*domain.ChatMessage, error) {
	msgs, err := s.messageStore.ListMessages(ctx, userID, historyLimit)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list messages", "user_id", userID, "error", err)
		return nil, err
	}
	return msgs, nil
}
