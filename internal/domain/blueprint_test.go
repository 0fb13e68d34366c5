package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/domain"
)

func TestTruthy(t *testing.T) {
	var nilPtr *string
	s := "x"

	falsy := []any{nil, "", 0, 0.0, false, []any{}, map[string]any{}, nilPtr}
	for _, v := range falsy {
		assert.False(t, domain.Truthy(v), "%#v", v)
	}

	truthy := []any{"x", 1, -2.5, true, []any{""}, map[string]any{"k": nil}, &s}
	for _, v := range truthy {
		assert.True(t, domain.Truthy(v), "%#v", v)
	}
}

func TestProgressFor(t *testing.T) {
	assert.Equal(t, 0, domain.ProgressFor(0))
	assert.Equal(t, 40, domain.ProgressFor(2))
	assert.Equal(t, 100, domain.ProgressFor(5))
	assert.Equal(t, 100, domain.ProgressFor(9))
}

func TestNewBlueprint_SeedsSixLayersInOrder(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	bp := domain.NewBlueprint("u1", now)

	require.Len(t, bp.Layers, 6)
	for i, id := range domain.LayerOrder {
		l := bp.Layers[i]
		assert.Equal(t, id, l.LayerID)
		assert.Equal(t, domain.LayerName(id), l.LayerName)
		assert.Equal(t, domain.StatusNotStarted, l.Status)
		assert.Zero(t, l.ProgressPercent)
		assert.Empty(t, l.Content)
	}
	assert.Equal(t, "Financial Layer", bp.Layer(domain.LayerFinancial).LayerName)
	assert.Nil(t, bp.Layer("marketing"))
}

func TestApplyContent(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	t.Run("two of three filled", func(t *testing.T) {
		l := domain.DefaultLayers(t0)[0]
		l.ApplyContent(map[string]any{"a": "x", "b": "", "c": "y"}, nil, t1)

		assert.Equal(t, 40, l.ProgressPercent)
		assert.Equal(t, domain.StatusInProgress, l.Status)
		assert.Equal(t, t1, l.UpdatedAt)
	})

	t.Run("five filled completes", func(t *testing.T) {
		l := domain.DefaultLayers(t0)[0]
		l.ApplyContent(map[string]any{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}, nil, t1)

		assert.Equal(t, 100, l.ProgressPercent)
		assert.Equal(t, domain.StatusCompleted, l.Status)
	})

	t.Run("caller status wins", func(t *testing.T) {
		l := domain.DefaultLayers(t0)[0]
		st := domain.StatusInProgress
		l.ApplyContent(map[string]any{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}, &st, t1)

		assert.Equal(t, 100, l.ProgressPercent)
		assert.Equal(t, domain.StatusInProgress, l.Status)
	})

	t.Run("empty content keeps stored status", func(t *testing.T) {
		l := domain.DefaultLayers(t0)[0]
		l.Status = domain.StatusCompleted
		l.ApplyContent(map[string]any{"a": ""}, nil, t1)

		assert.Equal(t, 0, l.ProgressPercent)
		assert.Equal(t, domain.StatusCompleted, l.Status)
	})

	t.Run("content is replaced, not merged", func(t *testing.T) {
		l := domain.DefaultLayers(t0)[0]
		l.ApplyContent(map[string]any{"old": "x"}, nil, t1)
		l.ApplyContent(map[string]any{"new": "y"}, nil, t1)

		assert.Equal(t, map[string]any{"new": "y"}, l.Content)
	})

	t.Run("nil content becomes empty", func(t *testing.T) {
		l := domain.DefaultLayers(t0)[0]
		l.ApplyContent(nil, nil, t1)

		assert.NotNil(t, l.Content)
		assert.Empty(t, l.Content)
	})
}

func TestSessionExpiredAt(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s := domain.Session{ExpiresAt: now.Add(time.Minute)}

	assert.False(t, s.ExpiredAt(now))
	assert.True(t, s.ExpiredAt(now.Add(2*time.Minute)))
}

func TestLayerStatusValid(t *testing.T) {
	assert.True(t, domain.StatusCompleted.Valid())
	assert.False(t, domain.LayerStatus("done").Valid())
}
