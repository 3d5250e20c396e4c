package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abhishek-iiit/innotract/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	// Foreign-key enforcement is per-connection in SQLite, so it must go
	// in the DSN where the driver applies it to every pooled connection.
	// Messages and slots must reference an existing session.
	db, err := sql.Open("sqlite3", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// withForeignKeys appends the driver's foreign-key parameter to the DSN
// unless the caller already set one.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'ongoing',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS slots (
			session_id TEXT NOT NULL,
			key TEXT NOT NULL,
			kind TEXT NOT NULL DEFAULT 'scalar',
			value TEXT NOT NULL,
			PRIMARY KEY (session_id, key),
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession creates a new session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, title, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		session.SessionID, session.UserID, session.Title, session.Status, session.CreatedAt)
	return err
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, user_id, title, status, created_at FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.UserID, &session.Title, &session.Status, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSessionStatus updates the status of a session.
func (s *SQLiteStore) UpdateSessionStatus(ctx context.Context, sessionID string, status domain.SessionStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET status = ? WHERE session_id = ?`,
		status, sessionID)
	return err
}

// AppendMessage appends a message to a session transcript.
func (s *SQLiteStore) AppendMessage(ctx context.Context, message *domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, session_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		message.MessageID, message.SessionID, message.Role, message.Content, message.CreatedAt)
	return err
}

// GetHistory retrieves all messages for a session in append order. The
// rowid tiebreak keeps ordering stable when timestamps collide.
func (s *SQLiteStore) GetHistory(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, session_id, role, content, created_at FROM messages
		 WHERE session_id = ? ORDER BY created_at ASC, rowid ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.MessageID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// LatestAssistantMessage returns the content of the most recent assistant
// message, or "" if there is none.
func (s *SQLiteStore) LatestAssistantMessage(ctx context.Context, sessionID string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM messages WHERE session_id = ? AND role = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		sessionID, domain.RoleAssistant).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// GetSlots retrieves all slots for a session.
func (s *SQLiteStore) GetSlots(ctx context.Context, sessionID string) (map[string]domain.SlotValue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, kind, value FROM slots WHERE session_id = ?`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make(map[string]domain.SlotValue)
	for rows.Next() {
		var key, value string
		var kind domain.SlotKind
		if err := rows.Scan(&key, &kind, &value); err != nil {
			return nil, err
		}
		slots[key] = domain.DecodeSlotValue(kind, value)
	}
	return slots, rows.Err()
}

// UpdateSlots upserts the given slots for a session. New values for
// existing keys overwrite them; no history of prior values is kept.
func (s *SQLiteStore) UpdateSlots(ctx context.Context, sessionID string, slots map[string]domain.SlotValue) error {
	if len(slots) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range slots {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO slots (session_id, key, kind, value) VALUES (?, ?, ?, ?)
			 ON CONFLICT(session_id, key) DO UPDATE SET kind = excluded.kind, value = excluded.value`,
			sessionID, key, value.Kind, value.Encoded())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
