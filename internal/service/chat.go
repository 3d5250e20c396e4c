package service

import (
	"context"
	"fmt"
	"log"

	"github.com/abhishek-iiit/innotract/internal/domain"
	"github.com/abhishek-iiit/innotract/policy"
)

// Chat processes one turn: load history and slots, invoke the engine,
// persist the results, and return the assistant reply with the turn's
// status.
func (s *Service) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResult, error) {
	if !s.EngineAvailable() {
		return nil, ErrEngineUnavailable
	}

	// Replay path: return the most recent stored assistant message
	// without invoking the engine or writing anything.
	if req.SystemInit {
		content, err := s.store.LatestAssistantMessage(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load last assistant message: %w", err)
		}
		return &domain.ChatResult{
			Messages: []domain.ChatMessage{{Role: domain.RoleAssistant, Content: content}},
		}, nil
	}

	if req.Message == "" {
		return nil, ErrMessageRequired
	}

	// Transcript writes are rejected by the store for unknown sessions;
	// surface that as client input before touching the write path.
	session, err := s.store.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.policyEngine != nil {
		decision, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
			"user_id":    req.UserID,
			"session_id": req.SessionID,
			"message":    req.Message,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate intake policy: %w", err)
		}
		if decision == policy.DecisionBlock {
			return nil, ErrMessageBlocked
		}
	}

	history, err := s.store.GetHistory(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	slots, err := s.store.GetSlots(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}

	if err := s.appendMessage(ctx, req.SessionID, domain.RoleUser, req.Message); err != nil {
		return nil, fmt.Errorf("failed to record user message: %w", err)
	}

	result := s.engine.RunTurn(ctx, history, req.Message, slots)

	if err := s.appendMessage(ctx, req.SessionID, domain.RoleAssistant, result.AssistantMessage); err != nil {
		return nil, fmt.Errorf("failed to record assistant message: %w", err)
	}

	if len(result.CollectedFields) > 0 {
		collected := make(map[string]domain.SlotValue, len(result.CollectedFields))
		for key, value := range result.CollectedFields {
			collected[key] = domain.SlotValueFromJSON(value)
		}
		if err := s.store.UpdateSlots(ctx, req.SessionID, collected); err != nil {
			return nil, fmt.Errorf("failed to update slots: %w", err)
		}
	}

	if result.Status.Terminal() {
		if err := s.store.UpdateSessionStatus(ctx, req.SessionID, domain.SessionStatusClosed); err != nil {
			log.Printf("WARN: failed to close session %s: %v", req.SessionID, err)
		}
	}

	return &domain.ChatResult{
		Messages: []domain.ChatMessage{{Role: domain.RoleAssistant, Content: result.AssistantMessage}},
		Status:   result.Status,
	}, nil
}
