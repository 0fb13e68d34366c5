package domain

import (
	"strings"

	"github.com/google/uuid"
)

func hexID(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > 0 && n < len(id) {
		return id[:n]
	}
	return id
}

func NewUserID() UserID              { return UserID("user_" + hexID(12)) }
func NewBlueprintID() BlueprintID    { return BlueprintID("bp_" + hexID(12)) }
func NewMessageID() MessageID        { return MessageID("msg_" + hexID(12)) }
func NewWaitlistID() WaitlistEntryID { return WaitlistEntryID("wl_" + hexID(12)) }

// NewSessionToken mints an opaque bearer secret from a random (v4) UUID.
func NewSessionToken() SessionToken { return SessionToken("st_" + hexID(0)) }
