// Package auth resolves request credentials to users and runs the
// external session-exchange login flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

// Credentials are the session tokens a request may carry.
type Credentials struct {
	CookieToken string
	BearerToken string
}

// Token picks the cookie token first, then the bearer token.
func (c Credentials) Token() domain.SessionToken {
	if c.CookieToken != "" {
		return domain.SessionToken(c.CookieToken)
	}
	return domain.SessionToken(c.BearerToken)
}

type Service struct {
	users      domain.UserStore
	sessions   domain.SessionStore
	blueprints domain.BlueprintStore
	exchanger  domain.SessionExchanger
	now        func() time.Time
}

func NewService(
	users domain.UserStore,
	sessions domain.SessionStore,
	blueprints domain.BlueprintStore,
	exchanger domain.SessionExchanger,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		blueprints: blueprints,
		exchanger:  exchanger,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Resolve returns the user behind the credentials, or nil for an anonymous
// caller. Missing, unknown and expired tokens and tokens whose user is gone
// all resolve to nil without an error; only store failures are returned.
func (s *Service) Resolve(ctx context.Context, creds Credentials) (*domain.User, error) {
	token := creds.Token()
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.GetSession(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if session.ExpiredAt(s.now()) {
		return nil, nil
	}

	user, err := s.users.GetUser(ctx, session.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		observability.LoggerFromContext(ctx).Warn("session references missing user", "user_id", session.UserID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// RequireAuth is Resolve that fails with ErrAuthenticationRequired for
// anonymous callers.
func (s *Service) RequireAuth(ctx context.Context, creds Credentials) (*domain.User, error) {
	user, err := s.Resolve(ctx, creds)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	return user, nil
}

type LoginOutput struct {
	User      *domain.User
	Token     domain.SessionToken
	ExpiresAt time.Time
}

// Login exchanges an external session identifier for a local session.
// Re-running it for the same email reuses the user and leaves exactly one
// session for that user.
func (s *Service) Login(ctx context.Context, externalSessionID string) (*LoginOutput, error) {
	if externalSessionID == "" {
		return nil, domain.ErrMissingSessionID
	}

	log := observability.LoggerFromContext(ctx)

	identity, err := s.exchanger.Exchange(ctx, externalSessionID)
	if err != nil {
		log.Warn("session exchange failed", "error", err)
		if errors.Is(err, domain.ErrInvalidExternalSession) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExternalSession, err)
	}

	now := s.now()
	userID, err := s.upsertUser(ctx, identity, now)
	if err != nil {
		return nil, err
	}
	log = log.With("user_id", userID)

	token := identity.SessionToken
	if token == "" {
		token = domain.NewSessionToken()
	}

	if err := s.sessions.DeleteSessionsByUser(ctx, userID); err != nil {
		log.Error("failed to delete prior sessions", "error", err)
		return nil, err
	}

	session := &domain.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(domain.SessionLifetime),
		CreatedAt: now,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}

	log.Info("session established", "expires_at", session.ExpiresAt)
	return &LoginOutput{
		User:      user,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) upsertUser(ctx context.Context, identity *domain.ExternalIdentity, now time.Time) (domain.UserID, error) {
	existing, err := s.users.FindUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if err := s.users.UpdateUserProfile(ctx, existing.ID, identity.Name, identity.Picture); err != nil {
			return "", fmt.Errorf("update user profile: %w", err)
		}
		return existing.ID, nil
	case !errors.Is(err, domain.ErrNotFound):
		return "", fmt.Errorf("find user by email: %w", err)
	}

	user := &domain.User{
		ID:        domain.NewUserID(),
		Email:     identity.Email,
		Name:      identity.Name,
		Picture:   identity.Picture,
		CreatedAt: now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	if err := s.blueprints.CreateBlueprint(ctx, domain.NewBlueprint(user.ID, now)); err != nil {
		return "", fmt.Errorf("create initial blueprint: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("user created", "user_id", user.ID)
	return user.ID, nil
}

// Logout deletes the session for the presented token, if any.
func (s *Service) Logout(ctx context.Context, creds Credentials) error {
	token := creds.Token()
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}
