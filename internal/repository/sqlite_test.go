package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhishek-iiit/innotract/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func createTestSession(t *testing.T, s *SQLiteStore, sessionID string) {
	t.Helper()
	session := &domain.Session{
		SessionID: sessionID,
		UserID:    "u1",
		Title:     "New chat",
		Status:    domain.SessionStatusOngoing,
		CreatedAt: time.Now(),
	}
	if err := s.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	createTestSession(t, s, "s1")

	got, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.UserID != "u1" || got.Status != domain.SessionStatusOngoing {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := s.UpdateSessionStatus(ctx, "s1", domain.SessionStatusClosed); err != nil {
		t.Fatalf("UpdateSessionStatus failed: %v", err)
	}
	got, err = s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Status != domain.SessionStatusClosed {
		t.Fatalf("expected closed session, got %q", got.Status)
	}

	missing, err := s.GetSession(ctx, "nope")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing session, got %+v", missing)
	}
}

func TestGetHistoryReturnsAppendOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createTestSession(t, s, "s1")

	// Identical timestamps: ordering must still follow append order.
	now := time.Now()
	contents := []string{"first", "second", "third", "fourth"}
	for i, content := range contents {
		msg := &domain.Message{
			MessageID: "m" + string(rune('1'+i)),
			SessionID: "s1",
			Role:      domain.RoleUser,
			Content:   content,
			CreatedAt: now,
		}
		if err := s.AppendMessage(ctx, msg); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	history, err := s.GetHistory(ctx, "s1")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != len(contents) {
		t.Fatalf("expected %d messages, got %d", len(contents), len(history))
	}
	for i, msg := range history {
		if msg.Content != contents[i] {
			t.Fatalf("message %d out of order: got %q, want %q", i, msg.Content, contents[i])
		}
	}
}

func TestGetHistoryEmptySession(t *testing.T) {
	s := newTestStore(t)
	createTestSession(t, s, "s1")

	history, err := s.GetHistory(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(history))
	}
}

func TestAppendMessageUnknownSession(t *testing.T) {
	s := newTestStore(t)

	msg := &domain.Message{
		MessageID: "m1",
		SessionID: "does-not-exist",
		Role:      domain.RoleUser,
		Content:   "hello",
		CreatedAt: time.Now(),
	}
	if err := s.AppendMessage(context.Background(), msg); err == nil {
		t.Fatal("expected foreign key error for unknown session")
	}
}

func TestForeignKeysEnforcedAcrossConnections(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "intake.db") + "?cache=shared&mode=rwc"
	s, err := NewSQLiteStore(dsn)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	createTestSession(t, s, "s1")

	// Retire the connection that served the setup statements so the next
	// statement runs on a fresh pooled connection, as happens under
	// concurrent load.
	s.db.SetMaxIdleConns(0)
	if err := s.db.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	s.db.SetMaxIdleConns(2)

	msg := &domain.Message{
		MessageID: "m1",
		SessionID: "does-not-exist",
		Role:      domain.RoleUser,
		Content:   "hello",
		CreatedAt: time.Now(),
	}
	if err := s.AppendMessage(ctx, msg); err == nil {
		t.Fatal("expected foreign key error on a fresh connection")
	}

	valid := &domain.Message{
		MessageID: "m2",
		SessionID: "s1",
		Role:      domain.RoleUser,
		Content:   "hello",
		CreatedAt: time.Now(),
	}
	if err := s.AppendMessage(ctx, valid); err != nil {
		t.Fatalf("AppendMessage failed for existing session: %v", err)
	}
}

func TestLatestAssistantMessage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createTestSession(t, s, "s1")

	content, err := s.LatestAssistantMessage(ctx, "s1")
	if err != nil {
		t.Fatalf("LatestAssistantMessage failed: %v", err)
	}
	if content != "" {
		t.Fatalf("expected empty content for empty session, got %q", content)
	}

	base := time.Now()
	messages := []domain.Message{
		{MessageID: "m1", SessionID: "s1", Role: domain.RoleAssistant, Content: "greeting", CreatedAt: base},
		{MessageID: "m2", SessionID: "s1", Role: domain.RoleUser, Content: "question", CreatedAt: base.Add(time.Second)},
		{MessageID: "m3", SessionID: "s1", Role: domain.RoleAssistant, Content: "answer", CreatedAt: base.Add(2 * time.Second)},
		{MessageID: "m4", SessionID: "s1", Role: domain.RoleUser, Content: "followup", CreatedAt: base.Add(3 * time.Second)},
	}
	for i := range messages {
		if err := s.AppendMessage(ctx, &messages[i]); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	content, err = s.LatestAssistantMessage(ctx, "s1")
	if err != nil {
		t.Fatalf("LatestAssistantMessage failed: %v", err)
	}
	if content != "answer" {
		t.Fatalf("expected most recent assistant message, got %q", content)
	}
}

func TestUpdateSlotsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createTestSession(t, s, "s1")

	slots := map[string]domain.SlotValue{
		"board_type": domain.ScalarSlot("PCB"),
		"interfaces": domain.StructuredSlot(json.RawMessage(`["usb","spi"]`)),
	}

	if err := s.UpdateSlots(ctx, "s1", slots); err != nil {
		t.Fatalf("UpdateSlots failed: %v", err)
	}
	if err := s.UpdateSlots(ctx, "s1", slots); err != nil {
		t.Fatalf("second UpdateSlots failed: %v", err)
	}

	got, err := s.GetSlots(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSlots failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(got))
	}
	if got["board_type"].Scalar != "PCB" {
		t.Fatalf("unexpected board_type: %+v", got["board_type"])
	}
}

func TestUpdateSlotsOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createTestSession(t, s, "s1")

	if err := s.UpdateSlots(ctx, "s1", map[string]domain.SlotValue{"power": domain.ScalarSlot("battery")}); err != nil {
		t.Fatalf("UpdateSlots failed: %v", err)
	}
	if err := s.UpdateSlots(ctx, "s1", map[string]domain.SlotValue{"power": domain.ScalarSlot("mains")}); err != nil {
		t.Fatalf("UpdateSlots failed: %v", err)
	}

	got, err := s.GetSlots(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSlots failed: %v", err)
	}
	if len(got) != 1 || got["power"].Scalar != "mains" {
		t.Fatalf("expected overwritten slot, got %+v", got)
	}
}

func TestStructuredSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createTestSession(t, s, "s1")

	original := json.RawMessage(`{"max_width_mm":80,"layers":[2,4]}`)
	if err := s.UpdateSlots(ctx, "s1", map[string]domain.SlotValue{"constraints": domain.StructuredSlot(original)}); err != nil {
		t.Fatalf("UpdateSlots failed: %v", err)
	}

	got, err := s.GetSlots(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSlots failed: %v", err)
	}
	value := got["constraints"]
	if value.Kind != domain.SlotKindStructured {
		t.Fatalf("expected structured slot, got %+v", value)
	}

	var want, have map[string]interface{}
	if err := json.Unmarshal(original, &want); err != nil {
		t.Fatalf("unmarshal original: %v", err)
	}
	if err := json.Unmarshal(value.Structured, &have); err != nil {
		t.Fatalf("unmarshal stored: %v", err)
	}
	if len(have) != len(want) || have["max_width_mm"] != want["max_width_mm"] {
		t.Fatalf("round trip mismatch: want %v, have %v", want, have)
	}
}

func TestUpdateSlotsEmptyNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createTestSession(t, s, "s1")

	if err := s.UpdateSlots(ctx, "s1", nil); err != nil {
		t.Fatalf("UpdateSlots with nil map failed: %v", err)
	}

	got, err := s.GetSlots(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSlots failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no slots, got %d", len(got))
	}
}
