// Package mongo stores every collection in MongoDB, using the same
// collection and field names as the documents already in production.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

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
	client *mongo.Client
	db     *mongo.Database
}

var _ domain.Store = (*Store)(nil)

// NewStore connects to MongoDB and selects the database. The connection is
// safe for concurrent use and lives until Close.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" || dbName == "" {
		return nil, fmt.Errorf("uri and database name are required for Mongo store")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		colSessions: {
			{Keys: bson.D{{Key: "session_token", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		colBlueprints: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		colMessages: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colWaitlist: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}
	for col, models := range indexes {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo ensureIndexes %s: %w", col, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo Ping: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// findOne decodes the first match into out, mapping "no documents" to
// domain.ErrNotFound.
func (s *Store) findOne(ctx context.Context, col string, filter bson.D, out any) error {
	err := s.col(col).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

// ─────────────────────────────────────────
// UserStore implementation
// ─────────────────────────────────────────

func (s *Store) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var doc userDoc
	if err := s.findOne(ctx, colUsers, bson.D{{Key: "user_id", Value: string(id)}}, &doc); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("mongo GetUser: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	if err := s.findOne(ctx, colUsers, bson.D{{Key: "email", Value: email}}, &doc); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("mongo FindUserByEmail: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if _, err := s.col(colUsers).InsertOne(ctx, fromUser(user)); err != nil {
		return fmt.Errorf("mongo CreateUser: %w", err)
	}
	return nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, id domain.UserID, name string, picture *string) error {
	_, err := s.col(colUsers).UpdateOne(ctx,
		bson.D{{Key: "user_id", Value: string(id)}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: name},
			{Key: "picture", Value: picture},
		}}},
	)
	if err != nil {
		return fmt.Errorf("mongo UpdateUserProfile: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) GetSession(ctx context.Context, token domain.SessionToken) (*domain.Session, error) {
	var doc sessionDoc
	if err := s.findOne(ctx, colSessions, bson.D{{Key: "session_token", Value: string(token)}}, &doc); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("mongo GetSession: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	if _, err := s.col(colSessions).InsertOne(ctx, fromSession(session)); err != nil {
		return fmt.Errorf("mongo CreateSession: %w", err)
	}
	return nil
}

func (s *Store) DeleteSession(ctx context.Context, token domain.SessionToken) error {
	if _, err := s.col(colSessions).DeleteMany(ctx, bson.D{{Key: "session_token", Value: string(token)}}); err != nil {
		return fmt.Errorf("mongo DeleteSession: %w", err)
	}
	return nil
}

func (s *Store) DeleteSessionsByUser(ctx context.Context, userID domain.UserID) error {
	if _, err := s.col(colSessions).DeleteMany(ctx, bson.D{{Key: "user_id", Value: string(userID)}}); err != nil {
		return fmt.Errorf("mongo DeleteSessionsByUser: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// BlueprintStore implementation
// ─────────────────────────────────────────

func (s *Store) GetBlueprint(ctx context.Context, userID domain.UserID) (*domain.Blueprint, error) {
	var doc blueprintDoc
	if err := s.findOne(ctx, colBlueprints, bson.D{{Key: "user_id", Value: string(userID)}}, &doc); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("mongo GetBlueprint: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) CreateBlueprint(ctx context.Context, bp *domain.Blueprint) error {
	if _, err := s.col(colBlueprints).InsertOne(ctx, fromBlueprint(bp)); err != nil {
		return fmt.Errorf("mongo CreateBlueprint: %w", err)
	}
	return nil
}

func (s *Store) SaveLayers(ctx context.Context, userID domain.UserID, layers []domain.LayerProgress, updatedAt time.Time) error {
	_, err := s.col(colBlueprints).UpdateOne(ctx,
		bson.D{{Key: "user_id", Value: string(userID)}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "layers", Value: fromLayers(layers)},
			{Key: "updated_at", Value: updatedAt},
		}}},
	)
	if err != nil {
		return fmt.Errorf("mongo SaveLayers: %w", err)
	}
	return nil
}

func (s *Store) UpdateCompanyName(ctx context.Context, userID domain.UserID, name string, updatedAt time.Time) error {
	_, err := s.col(colBlueprints).UpdateOne(ctx,
		bson.D{{Key: "user_id", Value: string(userID)}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "company_name", Value: name},
			{Key: "updated_at", Value: updatedAt},
		}}},
	)
	if err != nil {
		return fmt.Errorf("mongo UpdateCompanyName: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// ChatStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if _, err := s.col(colMessages).InsertOne(ctx, fromMessage(msg)); err != nil {
		return fmt.Errorf("mongo AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) RecentMessages(ctx context.Context, userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	return s.findMessages(ctx, userID, -1, limit)
}

func (s *Store) ListMessages(ctx context.Context, userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	return s.findMessages(ctx, userID, 1, limit)
}

func (s *Store) findMessages(ctx context.Context, userID domain.UserID, order, limit int) ([]*domain.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: order}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.col(colMessages).Find(ctx, bson.D{{Key: "user_id", Value: string(userID)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo findMessages: %w", err)
	}

	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo findMessages decode: %w", err)
	}

	out := make([]*domain.ChatMessage, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// ─────────────────────────────────────────
// WaitlistStore implementation
// ─────────────────────────────────────────

func (s *Store) FindWaitlistEntry(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	var doc waitlistDoc
	if err := s.findOne(ctx, colWaitlist, bson.D{{Key: "email", Value: email}}, &doc); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("mongo FindWaitlistEntry: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) AddWaitlistEntry(ctx context.Context, entry *domain.WaitlistEntry) error {
	if _, err := s.col(colWaitlist).InsertOne(ctx, fromWaitlist(entry)); err != nil {
		return fmt.Errorf("mongo AddWaitlistEntry: %w", err)
	}
	return nil
}
