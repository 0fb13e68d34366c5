package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/neweraservicez/startup-os/internal/domain"
)

const (
	colUsers      = "users"
	colSessions   = "user_sessions"
	colBlueprints = "blueprints"
	colMessages   = "chat_messages"
	colWaitlist   = "waitlist"
)

type Store struct {
	client *firestore.Client
}

var _ domain.Store = (*Store)(nil)

// NewStore creates a Firestore store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	iter := s.client.Collection(colUsers).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore Ping: %w", err)
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	return s.client.Close()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type userDoc struct {
	UserID    string    `firestore:"user_id"`
	Email     string    `firestore:"email"`
	Name      string    `firestore:"name"`
	Picture   *string   `firestore:"picture"`
	CreatedAt time.Time `firestore:"created_at"`
}

type sessionDoc struct {
	UserID       string    `firestore:"user_id"`
	SessionToken string    `firestore:"session_token"`
	ExpiresAt    time.Time `firestore:"expires_at"`
	CreatedAt    time.Time `firestore:"created_at"`
}

type layerDoc struct {
	LayerID         string                 `firestore:"layer_id"`
	LayerName       string                 `firestore:"layer_name"`
	Status          string                 `firestore:"status"`
	ProgressPercent int                    `firestore:"progress_percent"`
	Content         map[string]interface{} `firestore:"content"`
	UpdatedAt       time.Time              `firestore:"updated_at"`
}

type blueprintDoc struct {
	BlueprintID string     `firestore:"blueprint_id"`
	UserID      string     `firestore:"user_id"`
	CompanyName string     `firestore:"company_name"`
	Layers      []layerDoc `firestore:"layers"`
	CreatedAt   time.Time  `firestore:"created_at"`
	UpdatedAt   time.Time  `firestore:"updated_at"`
}

type messageDoc struct {
	MessageID string    `firestore:"message_id"`
	UserID    string    `firestore:"user_id"`
	Role      string    `firestore:"role"`
	Content   string    `firestore:"content"`
	CreatedAt time.Time `firestore:"created_at"`
}

type waitlistDoc struct {
	EntryID   string    `firestore:"entry_id"`
	Email     string    `firestore:"email"`
	Name      *string   `firestore:"name"`
	CreatedAt time.Time `firestore:"created_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:        domain.UserID(d.UserID),
		Email:     d.Email,
		Name:      d.Name,
		Picture:   d.Picture,
		CreatedAt: d.CreatedAt,
	}
}

func toLayerDocs(layers []domain.LayerProgress) []layerDoc {
	out := make([]layerDoc, 0, len(layers))
	for _, l := range layers {
		out = append(out, layerDoc{
			LayerID:         string(l.LayerID),
			LayerName:       l.LayerName,
			Status:          string(l.Status),
			ProgressPercent: l.ProgressPercent,
			Content:         l.Content,
			UpdatedAt:       l.UpdatedAt,
		})
	}
	return out
}

func (d blueprintDoc) toDomain() *domain.Blueprint {
	layers := make([]domain.LayerProgress, 0, len(d.Layers))
	for _, l := range d.Layers {
		content := l.Content
		if content == nil {
			content = map[string]any{}
		}
		layers = append(layers, domain.LayerProgress{
			LayerID:         domain.LayerID(l.LayerID),
			LayerName:       l.LayerName,
			Status:          domain.LayerStatus(l.Status),
			ProgressPercent: l.ProgressPercent,
			Content:         content,
			UpdatedAt:       l.UpdatedAt,
		})
	}
	return &domain.Blueprint{
		ID:          domain.BlueprintID(d.BlueprintID),
		UserID:      domain.UserID(d.UserID),
		CompanyName: d.CompanyName,
		Layers:      layers,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ─────────────────────────────────────────
// UserStore implementation
// ─────────────────────────────────────────

func (s *Store) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	snap, err := s.client.Collection(colUsers).Doc(string(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetUser: %w", err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetUser decode: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	iter := s.client.Collection(colUsers).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore FindUserByEmail: %w", err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore FindUserByEmail decode: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	doc := userDoc{
		UserID:    string(user.ID),
		Email:     user.Email,
		Name:      user.Name,
		Picture:   user.Picture,
		CreatedAt: user.CreatedAt,
	}
	if _, err := s.client.Collection(colUsers).Doc(string(user.ID)).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore CreateUser: %w", err)
	}
	return nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, id domain.UserID, name string, picture *string) error {
	_, err := s.client.Collection(colUsers).Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "name", Value: name},
		{Path: "picture", Value: picture},
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("firestore UpdateUserProfile: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) GetSession(ctx context.Context, token domain.SessionToken) (*domain.Session, error) {
	snap, err := s.client.Collection(colSessions).Doc(string(token)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}
	return &domain.Session{
		UserID:    domain.UserID(doc.UserID),
		Token:     domain.SessionToken(doc.SessionToken),
		ExpiresAt: doc.ExpiresAt.UTC(),
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	doc := sessionDoc{
		UserID:       string(session.UserID),
		SessionToken: string(session.Token),
		ExpiresAt:    session.ExpiresAt,
		CreatedAt:    session.CreatedAt,
	}
	if _, err := s.client.Collection(colSessions).Doc(string(session.Token)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

func (s *Store) DeleteSession(ctx context.Context, token domain.SessionToken) error {
	if _, err := s.client.Collection(colSessions).Doc(string(token)).Delete(ctx); err != nil {
		return fmt.Errorf("firestore DeleteSession: %w", err)
	}
	return nil
}

func (s *Store) DeleteSessionsByUser(ctx context.Context, userID domain.UserID) error {
	iter := s.client.Collection(colSessions).Where("user_id", "==", string(userID)).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return fmt.Errorf("firestore DeleteSessionsByUser: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("firestore DeleteSessionsByUser delete: %w", err)
		}
	}
	return nil
}

// ─────────────────────────────────────────
// BlueprintStore implementation
// ─────────────────────────────────────────

func (s *Store) blueprintRef(userID domain.UserID) *firestore.DocumentRef {
	return s.client.Collection(colBlueprints).Doc(string(userID))
}

func (s *Store) GetBlueprint(ctx context.Context, userID domain.UserID) (*domain.Blueprint, error) {
	snap, err := s.blueprintRef(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetBlueprint: %w", err)
	}

	var doc blueprintDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetBlueprint decode: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) CreateBlueprint(ctx context.Context, bp *domain.Blueprint) error {
	doc := blueprintDoc{
		BlueprintID: string(bp.ID),
		UserID:      string(bp.UserID),
		CompanyName: bp.CompanyName,
		Layers:      toLayerDocs(bp.Layers),
		CreatedAt:   bp.CreatedAt,
		UpdatedAt:   bp.UpdatedAt,
	}
	if _, err := s.blueprintRef(bp.UserID).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore CreateBlueprint: %w", err)
	}
	return nil
}

func (s *Store) SaveLayers(ctx context.Context, userID domain.UserID, layers []domain.LayerProgress, updatedAt time.Time) error {
	_, err := s.blueprintRef(userID).Update(ctx, []firestore.Update{
		{Path: "layers", Value: toLayerDocs(layers)},
		{Path: "updated_at", Value: updatedAt},
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("firestore SaveLayers: %w", err)
	}
	return nil
}

func (s *Store) UpdateCompanyName(ctx context.Context, userID domain.UserID, name string, updatedAt time.Time) error {
	_, err := s.blueprintRef(userID).Update(ctx, []firestore.Update{
		{Path: "company_name", Value: name},
		{Path: "updated_at", Value: updatedAt},
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("firestore UpdateCompanyName: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// ChatStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	doc := messageDoc{
		MessageID: string(msg.ID),
		UserID:    string(msg.UserID),
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	if _, err := s.client.Collection(colMessages).Doc(string(msg.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) RecentMessages(ctx context.Context, userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	return s.queryMessages(ctx, userID, firestore.Desc, limit)
}

func (s *Store) ListMessages(ctx context.Context, userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	return s.queryMessages(ctx, userID, firestore.Asc, limit)
}

// queryMessages needs a composite index on (user_id, created_at).
func (s *Store) queryMessages(ctx context.Context, userID domain.UserID, dir firestore.Direction, limit int) ([]*domain.ChatMessage, error) {
	q := s.client.Collection(colMessages).
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", dir)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.ChatMessage
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore queryMessages: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.ChatMessage{
			ID:        domain.MessageID(doc.MessageID),
			UserID:    domain.UserID(doc.UserID),
			Role:      domain.Role(doc.Role),
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

// ─────────────────────────────────────────
// WaitlistStore implementation
// ─────────────────────────────────────────

func (s *Store) FindWaitlistEntry(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	iter := s.client.Collection(colWaitlist).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore FindWaitlistEntry: %w", err)
	}

	var doc waitlistDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore FindWaitlistEntry decode: %w", err)
	}
	return &domain.WaitlistEntry{
		ID:        domain.WaitlistEntryID(doc.EntryID),
		Email:     doc.Email,
		Name:      doc.Name,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *Store) AddWaitlistEntry(ctx context.Context, entry *domain.WaitlistEntry) error {
	doc := waitlistDoc{
		EntryID:   string(entry.ID),
		Email:     entry.Email,
		Name:      entry.Name,
		CreatedAt: entry.CreatedAt,
	}
	if _, err := s.client.Collection(colWaitlist).Doc(string(entry.ID)).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore AddWaitlistEntry: %w", err)
	}
	return nil
}
