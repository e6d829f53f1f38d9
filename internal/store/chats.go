// ABOUTME: SQLite store methods for chats and their append-only message logs
// ABOUTME: Chat identity is the canonicalized participant pair; message append and preview update share one transaction

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// previewLimit is the maximum number of characters kept in a chat's
// last-message preview.
const previewLimit = 50

const chatColumns = `id, participant_a, participant_b, created_at, last_message, last_msg_at, unread_count`

// GetOrCreateChat returns the single chat for the unordered pair of public
// IDs, creating it lazily on first call. The pair is canonicalized
// (lexicographically smaller ID first) before lookup and insert, so both
// argument orders resolve to the same row. The UNIQUE(participant_a,
// participant_b) constraint backs the invariant; a concurrent create loses
// the race and re-reads the winner's row.
func (s *SQLiteStore) GetOrCreateChat(ctx context.Context, uidA, uidB string) (*Chat, error) {
	low, high := uidA, uidB
	if high < low {
		low, high = high, low
	}

	chat, err := s.getChatByPair(ctx, low, high)
	if err == nil {
		return chat, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	res, insertErr := s.db.ExecContext(ctx,
		`INSERT INTO chats (participant_a, participant_b, created_at) VALUES (?, ?, ?)`,
		low, high, formatTime(now))
	if insertErr != nil {
		if isUniqueViolation(insertErr, "") {
			return s.getChatByPair(ctx, low, high)
		}
		return nil, fmt.Errorf("inserting chat: %w", insertErr)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting chat id: %w", err)
	}

	s.logger.Debug("created chat", "id", id, "low", low, "high", high)
	return &Chat{
		ID:              id,
		ParticipantLow:  low,
		ParticipantHigh: high,
		CreatedAt:       now.Truncate(time.Second),
	}, nil
}

// GetChat retrieves a chat by ID. Returns ErrNotFound if it doesn't exist.
func (s *SQLiteStore) GetChat(ctx context.Context, id int64) (*Chat, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+chatColumns+` FROM chats WHERE id = ?`, id)
	return s.scanChat(row)
}

func (s *SQLiteStore) getChatByPair(ctx context.Context, low, high string) (*Chat, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+chatColumns+` FROM chats WHERE participant_a = ? AND participant_b = ?`, low, high)
	return s.scanChat(row)
}

func (s *SQLiteStore) scanChat(row *sql.Row) (*Chat, error) {
	var chat Chat
	var createdAt string
	var lastMessage, lastMsgAt sql.NullString

	err := row.Scan(
		&chat.ID,
		&chat.ParticipantLow,
		&chat.ParticipantHigh,
		&createdAt,
		&lastMessage,
		&lastMsgAt,
		&chat.UnreadCount,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning chat: %w", err)
	}

	chat.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	if lastMessage.Valid {
		chat.LastMessage = &lastMessage.String
	}
	if lastMsgAt.Valid {
		t, err := parseTime(lastMsgAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing last_msg_at: %w", err)
		}
		chat.LastMessageAt = &t
	}

	return &chat, nil
}

// AppendMessage inserts a message and updates the parent chat's preview
// fields in a single transaction, so a reader never observes one write
// without the other. The store assigns ID, SentAt and IsRead; the chat's
// last_msg_at is set to the exact sent_at of the message.
// Returns ErrNotFound if the chat doesn't exist.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg *Message) error {
	msg.SentAt = time.Now().UTC().Truncate(time.Second)
	msg.IsRead = false
	sentAt := formatTime(msg.SentAt)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO messages (chat_id, sender_uid, content, msg_type, file_name, file_size, sent_at, is_read)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`,
		msg.ChatID,
		msg.SenderUID,
		msg.Content,
		string(msg.Type),
		nullString(msg.FileName),
		nullInt64(msg.FileSize),
		sentAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("inserting message: %w", err)
	}

	msg.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting message id: %w", err)
	}

	update, err := tx.ExecContext(ctx,
		`UPDATE chats SET last_message = ?, last_msg_at = ? WHERE id = ?`,
		messagePreview(msg.Content, msg.Type), sentAt, msg.ChatID)
	if err != nil {
		return fmt.Errorf("updating chat preview: %w", err)
	}
	rowsAffected, err := update.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing message: %w", err)
	}

	s.logger.Debug("appended message", "id", msg.ID, "chat_id", msg.ChatID, "type", msg.Type)
	return nil
}

// messagePreview derives the denormalized chat preview: the first 50
// characters of the body for text, or a bracketed type tag otherwise.
func messagePreview(content string, msgType MessageType) string {
	if msgType != MessageText {
		return "[" + string(msgType) + "]"
	}
	runes := []rune(content)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}
	return content
}

// ListMessages returns a page of a chat's messages in chronological order.
// Ties within one second break by insertion order so pagination is stable.
func (s *SQLiteStore) ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*Message, error) {
	query := `
		SELECT id, chat_id, sender_uid, content, msg_type, file_name, file_size, sent_at, is_read
		FROM messages
		WHERE chat_id = ?
		ORDER BY sent_at ASC, id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, chatID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		var msgType, sentAt string
		var fileName sql.NullString
		var fileSize sql.NullInt64
		var isRead int

		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderUID, &msg.Content, &msgType, &fileName, &fileSize, &sentAt, &isRead); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}

		msg.Type, err = ParseMessageType(msgType)
		if err != nil {
			return nil, err
		}
		if fileName.Valid {
			msg.FileName = fileName.String
		}
		if fileSize.Valid {
			msg.FileSize = fileSize.Int64
		}
		msg.IsRead = isRead != 0

		msg.SentAt, err = parseTime(sentAt)
		if err != nil {
			return nil, fmt.Errorf("parsing sent_at: %w", err)
		}

		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}
	return messages, nil
}
