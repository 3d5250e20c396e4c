// Package domain defines the core domain models for the intake service.
package domain

// Role represents the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SessionStatus represents the lifecycle status of a session.
type SessionStatus string

const (
	SessionStatusOngoing SessionStatus = "ongoing"
	SessionStatusClosed  SessionStatus = "closed"
)

// ConversationStatus is the per-turn status chosen by the generation
// service and validated by the engine.
type ConversationStatus string

const (
	StatusOngoing      ConversationStatus = "ONGOING"
	StatusComplete     ConversationStatus = "COMPLETE"
	StatusHumanHandoff ConversationStatus = "HUMAN_HANDOFF"
	StatusOffTopic     ConversationStatus = "OFF_TOPIC"
)

// Valid reports whether s is one of the recognized conversation statuses.
func (s ConversationStatus) Valid() bool {
	switch s {
	case StatusOngoing, StatusComplete, StatusHumanHandoff, StatusOffTopic:
		return true
	}
	return false
}

// Terminal reports whether s ends the automated flow.
func (s ConversationStatus) Terminal() bool {
	return s == StatusComplete || s == StatusHumanHandoff
}
