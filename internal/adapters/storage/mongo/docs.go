package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/neweraservicez/startup-os/internal/domain"
)

// Timestamps are declared as any: new documents hold BSON dates, while
// documents written by the previous service hold ISO-8601 strings.

type userDoc struct {
	UserID    string  `bson:"user_id"`
	Email     string  `bson:"email"`
	Name      string  `bson:"name"`
	Picture   *string `bson:"picture"`
	CreatedAt any     `bson:"created_at"`
}

type sessionDoc struct {
	UserID       string `bson:"user_id"`
	SessionToken string `bson:"session_token"`
	ExpiresAt    any    `bson:"expires_at"`
	CreatedAt    any    `bson:"created_at"`
}

type layerDoc struct {
	LayerID         string         `bson:"layer_id"`
	LayerName       string         `bson:"layer_name"`
	Status          string         `bson:"status"`
	ProgressPercent int            `bson:"progress_percent"`
	Content         map[string]any `bson:"content"`
	UpdatedAt       any            `bson:"updated_at,omitempty"`
}

type blueprintDoc struct {
	BlueprintID string     `bson:"blueprint_id"`
	UserID      string     `bson:"user_id"`
	CompanyName string     `bson:"company_name"`
	Layers      []layerDoc `bson:"layers"`
	CreatedAt   any        `bson:"created_at"`
	UpdatedAt   any        `bson:"updated_at"`
}

type messageDoc struct {
	MessageID string `bson:"message_id"`
	UserID    string `bson:"user_id"`
	Role      string `bson:"role"`
	Content   string `bson:"content"`
	CreatedAt any    `bson:"created_at"`
}

type waitlistDoc struct {
	EntryID   string  `bson:"entry_id"`
	Email     string  `bson:"email"`
	Name      *string `bson:"name"`
	CreatedAt any     `bson:"created_at"`
}

func fromUser(u *domain.User) userDoc {
	return userDoc{
		UserID:    string(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		Picture:   u.Picture,
		CreatedAt: u.CreatedAt,
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:        domain.UserID(d.UserID),
		Email:     d.Email,
		Name:      d.Name,
		Picture:   d.Picture,
		CreatedAt: normalizeTime(d.CreatedAt),
	}
}

func fromSession(s *domain.Session) sessionDoc {
	return sessionDoc{
		UserID:       string(s.UserID),
		SessionToken: string(s.Token),
		ExpiresAt:    s.ExpiresAt,
		CreatedAt:    s.CreatedAt,
	}
}

func (d sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		UserID:    domain.UserID(d.UserID),
		Token:     domain.SessionToken(d.SessionToken),
		ExpiresAt: normalizeTime(d.ExpiresAt),
		CreatedAt: normalizeTime(d.CreatedAt),
	}
}

func fromLayers(layers []domain.LayerProgress) []layerDoc {
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

func fromBlueprint(bp *domain.Blueprint) blueprintDoc {
	return blueprintDoc{
		BlueprintID: string(bp.ID),
		UserID:      string(bp.UserID),
		CompanyName: bp.CompanyName,
		Layers:      fromLayers(bp.Layers),
		CreatedAt:   bp.CreatedAt,
		UpdatedAt:   bp.UpdatedAt,
	}
}

func (d blueprintDoc) toDomain() *domain.Blueprint {
	layers := make([]domain.LayerProgress, 0, len(d.Layers))
	for _, l := range d.Layers {
		content := make(map[string]any, len(l.Content))
		for k, v := range l.Content {
			content[k] = plain(v)
		}
		layers = append(layers, domain.LayerProgress{
			LayerID:         domain.LayerID(l.LayerID),
			LayerName:       l.LayerName,
			Status:          domain.LayerStatus(l.Status),
			ProgressPercent: l.ProgressPercent,
			Content:         content,
			UpdatedAt:       normalizeTime(l.UpdatedAt),
		})
	}
	return &domain.Blueprint{
		ID:          domain.BlueprintID(d.BlueprintID),
		UserID:      domain.UserID(d.UserID),
		CompanyName: d.CompanyName,
		Layers:      layers,
		CreatedAt:   normalizeTime(d.CreatedAt),
		UpdatedAt:   normalizeTime(d.UpdatedAt),
	}
}

func fromMessage(m *domain.ChatMessage) messageDoc {
	return messageDoc{
		MessageID: string(m.ID),
		UserID:    string(m.UserID),
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func (d messageDoc) toDomain() *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:        domain.MessageID(d.MessageID),
		UserID:    domain.UserID(d.UserID),
		Role:      domain.Role(d.Role),
		Content:   d.Content,
		CreatedAt: normalizeTime(d.CreatedAt),
	}
}

func fromWaitlist(e *domain.WaitlistEntry) waitlistDoc {
	return waitlistDoc{
		EntryID:   string(e.ID),
		Email:     e.Email,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
	}
}

func (d waitlistDoc) toDomain() *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:        domain.WaitlistEntryID(d.EntryID),
		Email:     d.Email,
		Name:      d.Name,
		CreatedAt: normalizeTime(d.CreatedAt),
	}
}

// isoLayouts are tried in order; layouts without a zone are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// normalizeTime converts a stored timestamp to an absolute UTC instant.
// Unreadable values become the zero time, which is before any real "now".
func normalizeTime(v any) time.Time {
	switch t := v.(type) {
	case bson.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC()
			}
		}
	}
	return time.Time{}
}

// plain converts driver container types into the map/slice shapes the rest
// of the application (and encoding/json) expects.
func plain(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = plain(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = plain(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = plain(e)
		}
		return m
	case bson.A:
		out := make([]any, 0, len(val))
		for _, e := range val {
			out = append(out, plain(e))
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, e := range val {
			out = append(out, plain(e))
		}
		return out
	case bson.DateTime:
		return val.Time().UTC()
	}
	return v
}
