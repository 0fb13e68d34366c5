package domain

import (
	"reflect"
	"time"
)

// progressPerField is how much each non-empty content field contributes.
const progressPerField = 20

// LayerOrder is the fixed order in which layers are seeded into a blueprint.
var LayerOrder = []LayerID{
	LayerIdentity,
	LayerProduct,
	LayerAudience,
	LayerSystems,
	LayerFinancial,
	LayerExpansion,
}

var layerNames = map[LayerID]string{
	LayerIdentity:  "Identity Layer",
	LayerProduct:   "Product Layer",
	LayerAudience:  "Audience Layer",
	LayerSystems:   "Systems Layer",
	LayerFinancial: "Financial Layer",
	LayerExpansion: "Expansion Layer",
}

// LayerName returns the display name for a layer id, or "" if unknown.
func LayerName(id LayerID) string {
	return layerNames[id]
}

// LayerProgress is the state of one strategic layer inside a blueprint.
type LayerProgress struct {
	LayerID         LayerID        `json:"layer_id"`
	LayerName       string         `json:"layer_name"`
	Status          LayerStatus    `json:"status"`
	ProgressPercent int            `json:"progress_percent"`
	Content         map[string]any `json:"content"`
	UpdatedAt       Timestamp      `json:"updated_at"`
}

// ApplyContent replaces the layer content wholesale and recomputes progress
// and status. A non-nil status overrides the derived one.
func (l *LayerProgress) ApplyContent(content map[string]any, status *LayerStatus, now time.Time) {
	if content == nil {
		content = map[string]any{}
	}
	l.Content = content
	l.ProgressPercent = ProgressFor(CountFilled(content))

	switch {
	case l.ProgressPercent == 100:
		l.Status = StatusCompleted
	case l.ProgressPercent > 0:
		l.Status = StatusInProgress
	}

	if status != nil {
		l.Status = *status
	}
	l.UpdatedAt = now
}

// Blueprint is a user's strategy document. There is at most one per user.
type Blueprint struct {
	ID          BlueprintID     `json:"blueprint_id"`
	UserID      UserID          `json:"user_id"`
	CompanyName string          `json:"company_name"`
	Layers      []LayerProgress `json:"layers"`
	CreatedAt   Timestamp       `json:"created_at"`
	UpdatedAt   Timestamp       `json:"updated_at"`
}

// NewBlueprint seeds a blueprint with the six layers, all not started.
func NewBlueprint(userID UserID, now time.Time) *Blueprint {
	return &Blueprint{
		ID:        NewBlueprintID(),
		UserID:    userID,
		Layers:    DefaultLayers(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultLayers returns the six layers in LayerOrder with empty content.
func DefaultLayers(now time.Time) []LayerProgress {
	layers := make([]LayerProgress, 0, len(LayerOrder))
	for _, id := range LayerOrder {
		layers = append(layers, LayerProgress{
			LayerID:   id,
			LayerName: layerNames[id],
			Status:    StatusNotStarted,
			Content:   map[string]any{},
			UpdatedAt: now,
		})
	}
	return layers
}

// Layer returns the first layer with the given id, or nil.
func (b *Blueprint) Layer(id LayerID) *LayerProgress {
	for i := range b.Layers {
		if b.Layers[i].LayerID == id {
			return &b.Layers[i]
		}
	}
	return nil
}

// CountFilled counts the truthy values of a content mapping.
func CountFilled(content map[string]any) int {
	n := 0
	for _, v := range content {
		if Truthy(v) {
			n++
		}
	}
	return n
}

// ProgressFor converts a filled-field count into a percentage capped at 100.
func ProgressFor(filled int) int {
	return min(100, filled*progressPerField)
}

// Truthy reports whether v counts as a filled value: empty strings, zero
// numbers, false, nil and empty collections do not.
func Truthy(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Truthy(rv.Elem().Interface())
	}
	return true
}
