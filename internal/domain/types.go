package domain

import "time"

type UserID string
type SessionToken string
type BlueprintID string
type MessageID string
type WaitlistEntryID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type LayerID string

const (
	LayerIdentity  LayerID = "identity"
	LayerProduct   LayerID = "product"
	LayerAudience  LayerID = "audience"
	LayerSystems   LayerID = "systems"
	LayerFinancial LayerID = "financial"
	LayerExpansion LayerID = "expansion"
)

type LayerStatus string

const (
	StatusNotStarted LayerStatus = "not_started"
	StatusInProgress LayerStatus = "in_progress"
	StatusCompleted  LayerStatus = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s LayerStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Timestamp = time.Time
