// Package engine produces the next assistant turn from conversation state.
package engine

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/abhishek-iiit/innotract/internal/adapter/llm"
	"github.com/abhishek-iiit/innotract/internal/domain"
)

// Degraded replies. Anything originating from the generation service is
// recovered locally into one of these; the caller never sees an error.
const (
	unavailableMessage = "I'm having trouble connecting to the AI model. Please make sure Ollama is running with the configured model."
	unparseableMessage = "Could you share one more detail, e.g. power source, interfaces, size, or environment?"
	clarifyMessage     = "Can you clarify more about your project?"
)

// Engine formats conversation context into a prompt, invokes the
// generation service, and validates its structured response.
type Engine struct {
	client llm.Client
}

// New creates a new turn engine over the given generation client.
func New(client llm.Client) *Engine {
	return &Engine{client: client}
}

// RunTurn produces the next assistant turn. It never returns an error:
// generation failures and malformed output degrade into conversational
// fallbacks with status ONGOING.
func (e *Engine) RunTurn(ctx context.Context, history []domain.Message, latestUser string, known map[string]domain.SlotValue) domain.TurnResult {
	prompt := buildPrompt(history, latestUser, known)

	start := time.Now()
	completion, err := e.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("WARN: generation call failed after %dms: %v", time.Since(start).Milliseconds(), err)
		return fallbackTurn(unavailableMessage)
	}

	parsed, ok := extractTurn(completion)
	if !ok {
		log.Printf("WARN: unparseable completion (%d bytes), using fallback", len(completion))
		return fallbackTurn(unparseableMessage)
	}
	return normalize(parsed)
}

// fallbackTurn is the deterministic degraded turn.
func fallbackTurn(message string) domain.TurnResult {
	return domain.TurnResult{
		AssistantMessage: message,
		Status:           domain.StatusOngoing,
		CollectedFields:  map[string]json.RawMessage{},
		AskFollowup:      true,
	}
}

// normalize validates and defaults the fields of a parsed turn.
func normalize(t rawTurn) domain.TurnResult {
	message := strings.TrimSpace(t.AssistantMessage)
	if message == "" {
		message = clarifyMessage
	}

	status := domain.ConversationStatus(strings.ToUpper(strings.TrimSpace(t.Status)))
	if !status.Valid() {
		status = domain.StatusOngoing
	}

	fields := map[string]json.RawMessage{}
	if len(t.CollectedFields) > 0 {
		if err := json.Unmarshal(t.CollectedFields, &fields); err != nil {
			// Not a JSON object, treat as empty.
			fields = map[string]json.RawMessage{}
		}
	}

	askFollowup := true
	if t.AskFollowup != nil {
		askFollowup = *t.AskFollowup
	}

	return domain.TurnResult{
		AssistantMessage: message,
		Status:           status,
		CollectedFields:  fields,
		AskFollowup:      askFollowup,
	}
}
