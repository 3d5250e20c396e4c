package domain

import "encoding/json"

// SessionRequest is the body of POST /session/new.
type SessionRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}

// SessionResponse is the body returned by POST /session/new.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	UserID     string `json:"user_id"`
	SessionID  string `json:"session_id"`
	Message    string `json:"message"`
	SystemInit bool   `json:"system_init"`
}

// ChatMessage is one role/content pair in a chat response.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the body returned by POST /chat. Status is empty on the
// system_init replay path.
type ChatResult struct {
	Messages []ChatMessage      `json:"messages"`
	Status   ConversationStatus `json:"status,omitempty"`
}

// TurnResult is the engine's normalized output for one turn.
type TurnResult struct {
	AssistantMessage string                     `json:"assistant_message"`
	Status           ConversationStatus         `json:"status"`
	CollectedFields  map[string]json.RawMessage `json:"collected_fields"`
	AskFollowup      bool                       `json:"ask_followup"`
}
