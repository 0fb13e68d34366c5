package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/adapters/storage/mongo"
	"github.com/neweraservicez/startup-os/internal/domain"
)

func newTestStore(t *testing.T) *mongo.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URL")
	if uri == "" {
		t.Skip("MONGO_TEST_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := mongo.NewStore(ctx, uri, "startupos_test_"+string(domain.NewMessageID())[4:])
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	require.NoError(t, s.Ping(ctx))
	return s
}

func TestStore_SessionsAndUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	u := &domain.User{ID: domain.NewUserID(), Email: "a@b.co", Name: "A", CreatedAt: now}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.FindUserByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	pic := "https://p"
	require.NoError(t, s.UpdateUserProfile(ctx, u.ID, "B", &pic))
	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	require.NotNil(t, got.Picture)
	assert.Equal(t, pic, *got.Picture)

	sess := &domain.Session{UserID: u.ID, Token: domain.NewSessionToken(), ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	require.NoError(t, s.CreateSession(ctx, sess))
	gotSess, err := s.GetSession(ctx, sess.Token)
	require.NoError(t, err)
	assert.True(t, sess.ExpiresAt.Equal(gotSess.ExpiresAt))

	require.NoError(t, s.DeleteSessionsByUser(ctx, u.ID))
	_, err = s.GetSession(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_BlueprintRoundTripKeepsNestedContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	uid := domain.NewUserID()
	bp := domain.NewBlueprint(uid, now)
	require.NoError(t, s.CreateBlueprint(ctx, bp))

	layers := bp.Layers
	layers[1].ApplyContent(map[string]any{
		"features": []any{"a", "b"},
		"pricing":  map[string]any{"tier": "pro"},
	}, nil, now)
	require.NoError(t, s.SaveLayers(ctx, uid, layers, now))

	got, err := s.GetBlueprint(ctx, uid)
	require.NoError(t, err)
	require.Len(t, got.Layers, 6)
	assert.Equal(t, 40, got.Layers[1].ProgressPercent)
	assert.Equal(t, []any{"a", "b"}, got.Layers[1].Content["features"])
	assert.Equal(t, map[string]any{"tier": "pro"}, got.Layers[1].Content["pricing"])
}

func TestStore_MessagesOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	uid := domain.NewUserID()
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i, text := range []string{"one", "two", "three"} {
		require.NoError(t, s.AppendMessage(ctx, &domain.ChatMessage{
			ID: domain.NewMessageID(), UserID: uid, Role: domain.RoleUser,
			Content: text, CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := s.RecentMessages(ctx, uid, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Content)

	all, err := s.ListMessages(ctx, uid, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Content)
}
