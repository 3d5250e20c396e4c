// Package store provides durable storage for sessions, messages and slots.
package store

import (
	"context"

	"github.com/abhishek-iiit/innotract/internal/domain"
)

// Store is the persistence interface used by the service layer.
type Store interface {
	// CreateSession records a new session.
	CreateSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by ID. Returns (nil, nil) if absent.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// UpdateSessionStatus updates the lifecycle status of a session.
	UpdateSessionStatus(ctx context.Context, sessionID string, status domain.SessionStatus) error

	// AppendMessage appends a message to a session transcript.
	AppendMessage(ctx context.Context, message *domain.Message) error

	// GetHistory returns all messages for a session in append order.
	GetHistory(ctx context.Context, sessionID string) ([]domain.Message, error)

	// LatestAssistantMessage returns the content of the most recent
	// assistant message, or "" if the session has none.
	LatestAssistantMessage(ctx context.Context, sessionID string) (string, error)

	// GetSlots returns all slots for a session keyed by slot name.
	GetSlots(ctx context.Context, sessionID string) (map[string]domain.SlotValue, error)

	// UpdateSlots upserts the given slots. No-op on an empty map.
	UpdateSlots(ctx context.Context, sessionID string, slots map[string]domain.SlotValue) error

	// Close releases the underlying storage.
	Close() error
}
