package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// MockClient is a mock implementation of Client for development and tests.
// It returns completions that follow the engine's JSON output protocol.
type MockClient struct{}

// NewMockClient creates a new mock generation client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements Client.
var _ Client = (*MockClient)(nil)

// Generate returns a protocol-valid mock turn.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	turn := map[string]interface{}{
		"assistant_message": "[MOCK] Noted. What power source will the device use?",
		"status":            "ONGOING",
		"collected_fields":  map[string]interface{}{},
		"ask_followup":      true,
	}
	out, err := json.Marshal(turn)
	if err != nil {
		return "", fmt.Errorf("failed to marshal mock turn: %w", err)
	}
	return string(out), nil
}

// Ping always succeeds.
func (m *MockClient) Ping(ctx context.Context) error {
	return nil
}
