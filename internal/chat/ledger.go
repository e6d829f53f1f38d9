// ABOUTME: Thread & message ledger: canonical 1:1 chats over an append-only log
// ABOUTME: Validates participants and text length before handing writes to the store

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

// MaxTextLength is the longest text message body the ledger accepts.
// Bodies are never truncated; over-long ones are rejected outright.
const MaxTextLength = 1000

// ErrSameUser is returned when both chat participants are the same user
var ErrSameUser = errors.New("cannot open a chat with yourself")

// ErrNotParticipant is returned when a sender is not part of the chat
var ErrNotParticipant = errors.New("sender is not a participant of this chat")

// ErrTextTooLong is returned when a text message exceeds MaxTextLength
var ErrTextTooLong = errors.New("text message too long")

// Ledger manages chats and their message logs.
type Ledger struct {
	chats  store.ChatStore
	logger *slog.Logger
}

// NewLedger creates a chat ledger backed by the given store.
func NewLedger(chats store.ChatStore) *Ledger {
	return &Ledger{
		chats:  chats,
		logger: slog.Default().With("component", "chat"),
	}
}

// OpenOrCreate returns the single chat between two users, creating it on
// first use. Argument order doesn't matter; both directions resolve to the
// same chat. A user cannot open a chat with themselves.
func (l *Ledger) OpenOrCreate(ctx context.Context, uidA, uidB string) (*store.Chat, error) {
	if uidA == uidB {
		return nil, ErrSameUser
	}
	return l.chats.GetOrCreateChat(ctx, uidA, uidB)
}

// Append records a message on the chat and updates the chat's last-message
// preview in the same transaction. The sender must be one of the chat's two
// participants, and text bodies are limited to MaxTextLength characters.
// The returned message carries the store-assigned ID and timestamp.
func (l *Ledger) Append(ctx context.Context, chatID int64, senderUID, content string, msgType store.MessageType, fileName string, fileSize int64) (*store.Message, error) {
	if msgType == store.MessageText && utf8.RuneCountInString(content) > MaxTextLength {
		return nil, ErrTextTooLong
	}

	chat, err := l.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if senderUID != chat.ParticipantLow && senderUID != chat.ParticipantHigh {
		return nil, ErrNotParticipant
	}

	msg := &store.Message{
		ChatID:    chatID,
		SenderUID: senderUID,
		Content:   content,
		Type:      msgType,
		FileName:  fileName,
		FileSize:  fileSize,
	}
	if err := l.chats.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	return msg, nil
}

// Messages returns a page of the chat's log, oldest first.
func (l *Ledger) Messages(ctx context.Context, chatID int64, limit, offset int) ([]*store.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return l.chats.ListMessages(ctx, chatID, limit, offset)
}
