// ABOUTME: Closed enum types stored as string tokens at the SQLite boundary
// ABOUTME: Parse functions reject unknown tokens with ErrCorruptRecord instead of defaulting

package store

import "fmt"

// Theme is the UI theme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a stored token to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: unknown theme %q", ErrCorruptRecord, s)
}

// ContactType classifies a contact edge.
type ContactType string

const (
	ContactFriend       ContactType = "friend"
	ContactAcquaintance ContactType = "acquaintance"
)

// ParseContactType maps a stored token to a ContactType.
func ParseContactType(s string) (ContactType, error) {
	switch ContactType(s) {
	case ContactFriend, ContactAcquaintance:
		return ContactType(s), nil
	}
	return "", fmt.Errorf("%w: unknown contact type %q", ErrCorruptRecord, s)
}

// MessageType classifies message content. Anything other than text carries a
// file reference; the raw bytes are never stored here.
type MessageType string

const (
	MessageText     MessageType = "text"
	MessageImage    MessageType = "image"
	MessageVideo    MessageType = "video"
	MessageDocument MessageType = "document"
	MessageArchive  MessageType = "archive"
)

// ParseMessageType maps a stored token to a MessageType.
func ParseMessageType(s string) (MessageType, error) {
	switch MessageType(s) {
	case MessageText, MessageImage, MessageVideo, MessageDocument, MessageArchive:
		return MessageType(s), nil
	}
	return "", fmt.Errorf("%w: unknown message type %q", ErrCorruptRecord, s)
}
