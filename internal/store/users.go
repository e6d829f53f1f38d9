// ABOUTME: SQLite store methods for user accounts, credentials, and preferences
// ABOUTME: Uniqueness of username and public ID is enforced by UNIQUE constraints, not pre-checks

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const userColumns = `id, uid, username, display_name, password_hash, avatar_color, theme, notifications, font_size, created_at`

// CreateUser inserts a new user row. The username and public ID uniqueness
// checks happen at the constraint level so a check-then-act race cannot slip
// a duplicate through. Returns ErrUsernameTaken or ErrPublicIDTaken on the
// respective collision. The store assigns ID and CreatedAt.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (uid, username, display_name, password_hash, avatar_color, theme, notifications, font_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		user.PublicID,
		user.Username,
		user.DisplayName,
		user.PasswordHash,
		user.AvatarColor,
		string(user.Theme),
		boolToInt(user.NotificationsEnabled),
		user.FontSize,
		formatTime(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return ErrUsernameTaken
		}
		if isUniqueViolation(err, "users.uid") {
			return ErrPublicIDTaken
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting user id: %w", err)
	}

	s.logger.Debug("created user", "uid", user.PublicID, "username", user.Username)
	return nil
}

// GetUserByUsername retrieves a user by exact username match.
// Returns ErrNotFound if no such user exists.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return s.scanUser(row)
}

// GetUserByPublicID retrieves a user by their public ID.
// Returns ErrNotFound if no such user exists.
func (s *SQLiteStore) GetUserByPublicID(ctx context.Context, publicID string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE uid = ?`, publicID)
	return s.scanUser(row)
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var user User
	var theme, createdAt string
	var notifications int

	err := row.Scan(
		&user.ID,
		&user.PublicID,
		&user.Username,
		&user.DisplayName,
		&user.PasswordHash,
		&user.AvatarColor,
		&theme,
		&notifications,
		&user.FontSize,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	user.Theme, err = ParseTheme(theme)
	if err != nil {
		return nil, err
	}
	user.NotificationsEnabled = notifications != 0

	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &user, nil
}

// UpdateDisplayName changes a user's display name.
// Returns ErrNotFound if the user doesn't exist.
func (s *SQLiteStore) UpdateDisplayName(ctx context.Context, publicID, displayName string) error {
	return s.updateUserField(ctx, publicID, "display_name", displayName)
}

// UpdatePasswordHash overwrites a user's stored password hash.
// Returns ErrNotFound if the user doesn't exist.
func (s *SQLiteStore) UpdatePasswordHash(ctx context.Context, publicID, passwordHash string) error {
	return s.updateUserField(ctx, publicID, "password_hash", passwordHash)
}

// UpdateTheme saves the user's theme preference.
// Returns ErrNotFound if the user doesn't exist.
func (s *SQLiteStore) UpdateTheme(ctx context.Context, publicID string, theme Theme) error {
	return s.updateUserField(ctx, publicID, "theme", string(theme))
}

func (s *SQLiteStore) updateUserField(ctx context.Context, publicID, column string, value any) error {
	// column names come from the fixed callers above, never from input
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+column+` = ? WHERE uid = ?`, value, publicID)
	if err != nil {
		return fmt.Errorf("updating %s: %w", column, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated user field", "uid", publicID, "column", column)
	return nil
}

// GetPreferences retrieves a user's settings projection.
// Returns ErrNotFound if the user doesn't exist.
func (s *SQLiteStore) GetPreferences(ctx context.Context, publicID string) (*Preferences, error) {
	var theme string
	var notifications int
	var prefs Preferences

	err := s.db.QueryRowContext(ctx,
		`SELECT theme, notifications, font_size FROM users WHERE uid = ?`, publicID).
		Scan(&theme, &notifications, &prefs.FontSize)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}

	prefs.Theme, err = ParseTheme(theme)
	if err != nil {
		return nil, err
	}
	prefs.NotificationsEnabled = notifications != 0

	return &prefs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
