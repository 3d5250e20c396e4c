package policy

import (
	"context"
	"strings"
	"testing"
)

func TestDefaultPolicyAllows(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, err := engine.Evaluate(ctx, map[string]interface{}{
		"user_id":    "u1",
		"session_id": "s1",
		"message":    "I need a sensor board",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionAllow {
		t.Fatalf("expected allow, got %q", decision)
	}
}

func TestDefaultPolicyBlocksOversizeMessage(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	decision, err := engine.Evaluate(ctx, map[string]interface{}{
		"user_id":    "u1",
		"session_id": "s1",
		"message":    strings.Repeat("a", 8001),
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionBlock {
		t.Fatalf("expected block, got %q", decision)
	}
}

func TestInvalidPolicyFailsPreparation(t *testing.T) {
	if _, err := NewEngine(context.Background(), "not rego"); err == nil {
		t.Fatal("expected error for invalid policy content")
	}
}
