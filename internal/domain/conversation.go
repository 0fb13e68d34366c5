package domain

// ChatMessage is one turn of the mentor conversation. Messages are append-only
// and ordered by creation time.
type ChatMessage struct {
	ID        MessageID `json:"message_id"`
	UserID    UserID    `json:"user_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

// WaitlistEntry is keyed naturally by email.
type WaitlistEntry struct {
	ID        WaitlistEntryID `json:"entry_id"`
	Email     string          `json:"email"`
	Name      *string         `json:"name"`
	CreatedAt Timestamp       `json:"created_at"`
}
