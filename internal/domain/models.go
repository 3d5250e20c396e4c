package domain

import "time"

// Session is one conversation with a user. Immutable after creation
// except for its status.
type Session struct {
	SessionID string        `json:"session_id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Message is one entry in a session transcript. Append-only.
type Message struct {
	MessageID string    `json:"message_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
