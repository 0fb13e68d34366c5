package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNormalizeTime(t *testing.T) {
	want := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	cases := map[string]any{
		"bson date":      bson.NewDateTimeFromTime(want),
		"time in zone":   want.In(time.FixedZone("X", 3*3600)),
		"iso with zone":  "2025-03-01T12:30:00+00:00",
		"iso with micro": "2025-03-01T12:30:00.000000+00:00",
		"naive iso":      "2025-03-01T12:30:00",
		"offset iso":     "2025-03-01T15:30:00+03:00",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got := normalizeTime(in)
			assert.True(t, want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	assert.True(t, normalizeTime("garbage").IsZero())
	assert.True(t, normalizeTime(nil).IsZero())
}

func TestPlainConvertsDriverTypes(t *testing.T) {
	in := bson.D{
		{Key: "tiers", Value: bson.A{
			bson.D{{Key: "name", Value: "Pro"}, {Key: "price", Value: int32(49)}},
		}},
		{Key: "tags", Value: bson.A{"a", "b"}},
	}

	got := plain(in)

	assert.Equal(t, map[string]any{
		"tiers": []any{map[string]any{"name": "Pro", "price": int32(49)}},
		"tags":  []any{"a", "b"},
	}, got)
}
