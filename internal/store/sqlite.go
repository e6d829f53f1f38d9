// ABOUTME: SQLite implementation of the Store interfaces using modernc.org/sqlite
// ABOUTME: Opens the database with WAL mode and creates the schema idempotently

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// Each statement is independently idempotent; existing data is never touched.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			uid           TEXT    NOT NULL UNIQUE,
			username      TEXT    NOT NULL UNIQUE,
			display_name  TEXT    NOT NULL,
			password_hash TEXT    NOT NULL,
			avatar_color  INTEGER NOT NULL DEFAULT 0,
			theme         TEXT    NOT NULL DEFAULT 'dark',
			notifications INTEGER NOT NULL DEFAULT 1,
			font_size     REAL    NOT NULL DEFAULT 14.0,
			created_at    TEXT    NOT NULL
		);

		CREATE TABLE IF NOT EXISTS contacts (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_uid    TEXT    NOT NULL,
			contact_uid  TEXT    NOT NULL,
			display_name TEXT    NOT NULL,
			avatar_color INTEGER NOT NULL DEFAULT 0,
			contact_type TEXT    NOT NULL DEFAULT 'acquaintance',
			starred      INTEGER NOT NULL DEFAULT 0,
			added_at     TEXT    NOT NULL,
			UNIQUE(owner_uid, contact_uid)
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_owner ON contacts(owner_uid);

		CREATE TABLE IF NOT EXISTS chats (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			participant_a TEXT NOT NULL,
			participant_b TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			last_message  TEXT,
			last_msg_at   TEXT,
			unread_count  INTEGER NOT NULL DEFAULT 0,
			UNIQUE(participant_a, participant_b)
		);

		CREATE TABLE IF NOT EXISTS messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id    INTEGER NOT NULL REFERENCES chats(id),
			sender_uid TEXT    NOT NULL,
			content    TEXT    NOT NULL,
			msg_type   TEXT    NOT NULL DEFAULT 'text',
			file_name  TEXT,
			file_size  INTEGER,
			sent_at    TEXT    NOT NULL,
			is_read    INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_messages_chat_id ON messages(chat_id);
		CREATE INDEX IF NOT EXISTS idx_messages_sent_at ON messages(sent_at);

		CREATE TABLE IF NOT EXISTS products (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_uid    TEXT NOT NULL,
			code         TEXT NOT NULL,
			name         TEXT NOT NULL,
			quantity     REAL NOT NULL DEFAULT 0.0,
			net_value    REAL NOT NULL DEFAULT 0.0,
			sale_value   REAL NOT NULL DEFAULT 0.0,
			profit_value REAL NOT NULL DEFAULT 0.0,
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL,
			UNIQUE(owner_uid, code)
		);

		CREATE INDEX IF NOT EXISTS idx_products_owner ON products(owner_uid);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// isUniqueViolation checks if the error is a SQLite UNIQUE constraint
// violation on the given column (e.g. "users.username"). With an empty
// column it matches any unique violation.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "UNIQUE constraint failed") {
		return false
	}
	return column == "" || strings.Contains(errStr, column)
}

// isForeignKeyViolation checks if the error is a SQLite FOREIGN KEY
// constraint violation, which this schema surfaces as ErrNotFound on the
// referenced row.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// nullString returns nil for empty strings, otherwise the string itself
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt64 returns nil for zero, otherwise the value itself
func nullInt64(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

// formatTime renders a timestamp the way every column in this schema stores
// it: RFC3339 in UTC, which sorts lexicographically in time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Ensure SQLiteStore implements the combined Store interface
var _ Store = (*SQLiteStore)(nil)
