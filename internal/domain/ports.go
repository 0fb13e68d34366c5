package domain

import (
	"context"
	"time"
)

// LLMClient defines how the core application talks to a text-generation service.
type LLMClient interface {
	Generate(ctx context.Context, req Completion) (string, error)
}

// Completion is a single-shot generation request.
type Completion struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// SessionExchanger trades a short-lived external session identifier for the
// identity behind it.
type SessionExchanger interface {
	Exchange(ctx context.Context, externalSessionID string) (*ExternalIdentity, error)
}

// UserStore defines user persistence. Lookups return ErrNotFound when absent.
type UserStore interface {
	GetUser(ctx context.Context, id UserID) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUserProfile(ctx context.Context, id UserID, name string, picture *string) error
}

// SessionStore defines session persistence.
type SessionStore interface {
	GetSession(ctx context.Context, token SessionToken) (*Session, error)
	CreateSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, token SessionToken) error
	DeleteSessionsByUser(ctx context.Context, userID UserID) error
}

// BlueprintStore defines blueprint persistence. Writes are whole-field
// replacements with no concurrency token: the last writer wins.
type BlueprintStore interface {
	GetBlueprint(ctx context.Context, userID UserID) (*Blueprint, error)
	CreateBlueprint(ctx context.Context, bp *Blueprint) error
	SaveLayers(ctx context.Context, userID UserID, layers []LayerProgress, updatedAt time.Time) error
	// UpdateCompanyName is a no-op when the user has no blueprint.
	UpdateCompanyName(ctx context.Context, userID UserID, name string, updatedAt time.Time) error
}

// ChatStore defines chat message persistence.
type ChatStore interface {
	AppendMessage(ctx context.Context, msg *ChatMessage) error
	// RecentMessages returns up to limit messages, newest first.
	RecentMessages(ctx context.Context, userID UserID, limit int) ([]*ChatMessage, error)
	// ListMessages returns up to limit messages, oldest first.
	ListMessages(ctx context.Context, userID UserID, limit int) ([]*ChatMessage, error)
}

// WaitlistStore defines waitlist persistence.
type WaitlistStore interface {
	FindWaitlistEntry(ctx context.Context, email string) (*WaitlistEntry, error)
	AddWaitlistEntry(ctx context.Context, entry *WaitlistEntry) error
}

// Store is a full document-store backend with an explicit lifecycle.
type Store interface {
	UserStore
	SessionStore
	BlueprintStore
	ChatStore
	WaitlistStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
