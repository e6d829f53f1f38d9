// ABOUTME: SQLite store methods for the per-owner contact graph
// ABOUTME: Adds are idempotent via INSERT OR IGNORE; listing orders starred first, then name

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AddContact inserts a contact edge for the owner. Re-adding an existing
// (owner, contact) pair is a no-op, not an error. The store assigns ID and
// AddedAt. Self-reference rejection belongs to the contacts service.
func (s *SQLiteStore) AddContact(ctx context.Context, contact *Contact) error {
	if contact.AddedAt.IsZero() {
		contact.AddedAt = time.Now().UTC()
	}

	query := `
		INSERT OR IGNORE INTO contacts (owner_uid, contact_uid, display_name, avatar_color, contact_type, starred, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		contact.OwnerUID,
		contact.ContactUID,
		contact.DisplayName,
		contact.AvatarColor,
		string(contact.Type),
		boolToInt(contact.Starred),
		formatTime(contact.AddedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		contact.ID = id
	}

	s.logger.Debug("added contact", "owner", contact.OwnerUID, "contact", contact.ContactUID, "type", contact.Type)
	return nil
}

// ListContacts returns the owner's contacts of the given type, starred edges
// first, then display name ascending. The name ordering is SQLite's default
// BINARY collation, i.e. plain byte ordering.
func (s *SQLiteStore) ListContacts(ctx context.Context, ownerUID string, contactType ContactType) ([]*Contact, error) {
	query := `
		SELECT id, owner_uid, contact_uid, display_name, avatar_color, contact_type, starred, added_at
		FROM contacts
		WHERE owner_uid = ? AND contact_type = ?
		ORDER BY starred DESC, display_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerUID, string(contactType))
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*Contact
	for rows.Next() {
		var c Contact
		var typ, addedAt string
		var starred int

		if err := rows.Scan(&c.ID, &c.OwnerUID, &c.ContactUID, &c.DisplayName, &c.AvatarColor, &typ, &starred, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning contact row: %w", err)
		}

		c.Type, err = ParseContactType(typ)
		if err != nil {
			return nil, err
		}
		c.Starred = starred != 0

		c.AddedAt, err = parseTime(addedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing added_at: %w", err)
		}

		contacts = append(contacts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}
	return contacts, nil
}

// ToggleStar flips the starred flag on a contact edge and returns the
// resulting state. Returns ErrNotFound if the edge doesn't exist.
func (s *SQLiteStore) ToggleStar(ctx context.Context, ownerUID, contactUID string) (bool, error) {
	var starred int
	err := s.db.QueryRowContext(ctx,
		`SELECT starred FROM contacts WHERE owner_uid = ? AND contact_uid = ?`,
		ownerUID, contactUID).Scan(&starred)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("querying starred: %w", err)
	}

	newVal := starred == 0
	_, err = s.db.ExecContext(ctx,
		`UPDATE contacts SET starred = ? WHERE owner_uid = ? AND contact_uid = ?`,
		boolToInt(newVal), ownerUID, contactUID)
	if err != nil {
		return false, fmt.Errorf("updating starred: %w", err)
	}

	s.logger.Debug("toggled star", "owner", ownerUID, "contact", contactUID, "starred", newVal)
	return newVal, nil
}

// RemoveContact deletes a contact edge. Removing a non-existent edge is not
// an error, and the reverse edge (if any) is untouched.
func (s *SQLiteStore) RemoveContact(ctx context.Context, ownerUID, contactUID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE owner_uid = ? AND contact_uid = ?`,
		ownerUID, contactUID)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	s.logger.Debug("removed contact", "owner", ownerUID, "contact", contactUID)
	return nil
}
