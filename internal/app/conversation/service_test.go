package conversation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/adapters/storage/memory"
	"github.com/neweraservicez/startup-os/internal/app/conversation"
	"github.com/neweraservicez/startup-os/internal/domain"
)

// recordingLLM remembers the last completion request.
type recordingLLM struct {
	last  domain.Completion
	calls int
	reply string
	err   error
}

func (r *recordingLLM) Generate(_ context.Context, req domain.Completion) (string, error) {
	r.last = req
	r.calls++
	return r.reply, r.err
}

func tickingClock() func() time.Time {
	t := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestSendMessage_PersistsBothTurns(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()
	llm := &recordingLLM{reply: "Ship it."}
	svc := conversation.NewService(llm, store).WithClock(tickingClock())

	out, err := svc.SendMessage(ctx, conversation.SendMessageInput{UserID: "u1", Text: "Should I ship?"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, out.UserMessage.Role)
	assert.Equal(t, domain.RoleAssistant, out.AssistantMessage.Role)
	assert.Equal(t, "Ship it.", out.AssistantMessage.Content)

	assert.InDelta(t, 0.7, llm.last.Temperature, 1e-6)
	assert.Positive(t, llm.last.MaxTokens)
	assert.Contains(t, llm.last.System, "startup mentor")

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Should I ship?", history[0].Content)
	assert.Equal(t, "Ship it.", history[1].Content)
}

func TestSendMessage_UsesNinePriorTurns(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()
	clock := tickingClock()
	for i := 0; i < 12; i++ {
		require.NoError(t, store.AppendMessage(ctx, &domain.ChatMessage{
			ID: domain.NewMessageID(), UserID: "u1", Role: domain.RoleUser,
			Content: fmt.Sprintf("m%d", i), CreatedAt: clock(),
		}))
	}

	llm := &recordingLLM{reply: "ok"}
	svc := conversation.NewService(llm, store).WithClock(clock)

	_, err := svc.SendMessage(ctx, conversation.SendMessageInput{UserID: "u1", Text: "now"})
	require.NoError(t, err)

	prompt := llm.last.Prompt
	transcript := strings.SplitN(strings.TrimPrefix(prompt, "Previous conversation:\n"), "\n\n", 2)[0]
	lines := strings.Split(transcript, "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "user: m3", lines[0])
	assert.Equal(t, "user: m11", lines[8])
	assert.Contains(t, prompt, "User's current question: now")
	assert.NotContains(t, transcript, "user: now")
}

func TestSendMessage_BusinessContext(t *testing.T) {
	llm := &recordingLLM{reply: "ok"}
	svc := conversation.NewService(llm, memory.NewMessageStore())

	_, err := svc.SendMessage(context.Background(), conversation.SendMessageInput{
		UserID: "u1", Text: "pricing?", Context: "B2B SaaS for dentists",
	})
	require.NoError(t, err)
	assert.Contains(t, llm.last.Prompt, "Business context: B2B SaaS for dentists")

	_, err = svc.SendMessage(context.Background(), conversation.SendMessageInput{UserID: "u1", Text: "again"})
	require.NoError(t, err)
	assert.NotContains(t, llm.last.Prompt, "Business context:")
}

func TestSendMessage_FailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMessageStore()
	llm := &recordingLLM{err: errors.New("quota exceeded")}
	svc := conversation.NewService(llm, store)

	out, err := svc.SendMessage(ctx, conversation.SendMessageInput{UserID: "u1", Text: "help"})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Equal(t, "quota exceeded", err.Error())

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "help", history[0].Content)
}

func TestHistory_IsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	svc := conversation.NewService(&recordingLLM{reply: "ok"}, memory.NewMessageStore())

	_, err := svc.SendMessage(ctx, conversation.SendMessageInput{UserID: "u1", Text: "hi"})
	require.NoError(t, err)

	history, err := svc.History(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, history)
}
