package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "tinyllama" || req.Stream || req.Prompt == "" {
			t.Errorf("unexpected request: %+v", req)
		}
		if req.Options.Temperature != 0.2 {
			t.Errorf("unexpected temperature: %v", req.Options.Temperature)
		}
		json.NewEncoder(w).Encode(generateResponse{Model: req.Model, Response: "hello there", Done: true})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "tinyllama", 0.2, 5*time.Second)
	completion, err := client.Generate(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if completion != "hello there" {
		t.Fatalf("unexpected completion: %q", completion)
	}
}

func TestGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not found"})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "tinyllama", 0.2, 5*time.Second)
	if _, err := client.Generate(context.Background(), "say hello"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestGenerateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewOllamaClient(server.URL, "tinyllama", 0.2, time.Second)
	if _, err := client.Generate(context.Background(), "say hello"); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "tinyllama", 0.2, time.Second)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	server.Close()
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error after server close")
	}
}

func TestMockClientFollowsProtocol(t *testing.T) {
	client := NewMockClient()
	completion, err := client.Generate(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var turn map[string]json.RawMessage
	if err := json.Unmarshal([]byte(completion), &turn); err != nil {
		t.Fatalf("mock completion is not a JSON object: %v", err)
	}
	for _, key := range []string{"assistant_message", "status", "collected_fields", "ask_followup"} {
		if _, ok := turn[key]; !ok {
			t.Fatalf("mock completion missing %q", key)
		}
	}
}
