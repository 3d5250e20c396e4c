package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek-iiit/innotract/internal/domain"
)

const (
	defaultTitle    = "New chat"
	greetingMessage = "Hi, I'm your electronics requirements assistant. What's on your mind?"
)

// CreateSession creates a new session and records the initial assistant
// greeting.
func (s *Service) CreateSession(ctx context.Context, userID, title string) (string, error) {
	if title == "" {
		title = defaultTitle
	}

	session := &domain.Session{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Status:    domain.SessionStatusOngoing,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.appendMessage(ctx, session.SessionID, domain.RoleAssistant, greetingMessage); err != nil {
		return "", fmt.Errorf("failed to record greeting: %w", err)
	}
	return session.SessionID, nil
}

// GetHistory returns the full ordered transcript for a session.
func (s *Service) GetHistory(ctx context.Context, sessionID string) ([]domain.Message, error) {
	history, err := s.store.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return history, nil
}

// GetSlots returns the current slot map for a session.
func (s *Service) GetSlots(ctx context.Context, sessionID string) (map[string]domain.SlotValue, error) {
	slots, err := s.store.GetSlots(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	return slots, nil
}

func (s *Service) appendMessage(ctx context.Context, sessionID string, role domain.Role, content string) error {
	return s.store.AppendMessage(ctx, &domain.Message{
		MessageID: uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}
