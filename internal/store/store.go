// ABOUTME: Store interfaces and data types for nimbuzyn persistence
// ABOUTME: Defines User, Contact, Chat, Message, Product structs and per-component store interfaces

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned when registering a username that already exists
var ErrUsernameTaken = errors.New("username already exists")

// ErrPublicIDTaken is returned when a freshly minted public ID collides with
// an existing one. Callers mint a new ID and retry.
var ErrPublicIDTaken = errors.New("public id already exists")

// ErrDuplicateCode is returned when a product code already exists for the owner
var ErrDuplicateCode = errors.New("product code already exists")

// ErrCorruptRecord is returned when a stored enum token is not recognized.
// Unknown tokens are corruption, never silently defaulted.
var ErrCorruptRecord = errors.New("corrupt record")

// DefaultAvatarColor is the packed ARGB brand blue assigned at registration.
const DefaultAvatarColor uint32 = 0xFF4A90E2

// User represents a registered account. PublicID is the stable user-facing
// identifier (format "NIM-" + 6 uppercase hex characters); ID is the internal
// surrogate key and never leaves the store layer's callers.
type User struct {
	ID                   int64
	PublicID             string
	Username             string
	DisplayName          string
	PasswordHash         string // PHC-format argon2id hash, cleared before leaving the auth layer
	AvatarColor          uint32
	Theme                Theme
	NotificationsEnabled bool
	FontSize             float64
	CreatedAt            time.Time
}

// Preferences is the per-user settings projection.
type Preferences struct {
	Theme                Theme
	NotificationsEnabled bool
	FontSize             float64
}

// Contact is a directed edge from an owner to another user. DisplayName and
// AvatarColor are snapshots taken at add-time; if the counterpart later
// renames themselves, existing edges keep the old name. That is deliberate.
type Contact struct {
	ID          int64
	OwnerUID    string
	ContactUID  string
	DisplayName string
	AvatarColor uint32
	Type        ContactType
	Starred     bool
	AddedAt     time.Time
}

// Chat represents the single conversation between two users. The participant
// pair is stored canonically (lexicographically smaller public ID first) so
// lookups from either direction resolve to the same row.
type Chat struct {
	ID              int64
	ParticipantLow  string
	ParticipantHigh string
	CreatedAt       time.Time
	LastMessage     *string
	LastMessageAt   *time.Time
	UnreadCount     int // reserved; no operation increments it
}

// Message is one entry in a chat's append-only log. Content holds the text
// body for text messages or a file reference for other types; the store never
// transfers file bytes, only this metadata.
type Message struct {
	ID        int64
	ChatID    int64
	SenderUID string
	Content   string
	Type      MessageType
	FileName  string // empty for text messages
	FileSize  int64  // bytes, 0 when not applicable
	SentAt    time.Time
	IsRead    bool
}

// Product is a per-owner inventory record. ProfitValue is derived
// (SaleValue - NetValue) and recomputed on every write.
type Product struct {
	ID          int64
	OwnerUID    string
	Code        string
	Name        string
	Quantity    float64
	NetValue    float64
	SaleValue   float64
	ProfitValue float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InventorySummary is a computed projection over an owner's products.
// It is never persisted.
type InventorySummary struct {
	TotalProducts    int64
	TotalNetValue    float64
	TotalProfitValue float64
	OutOfStockCount  int64 // products with quantity < 1 (strict, fractional stock counts)
}

// UserStore defines persistence for accounts, credentials, and preferences.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByPublicID(ctx context.Context, publicID string) (*User, error)
	UpdateDisplayName(ctx context.Context, publicID, displayName string) error
	UpdatePasswordHash(ctx context.Context, publicID, passwordHash string) error
	UpdateTheme(ctx context.Context, publicID string, theme Theme) error
	GetPreferences(ctx context.Context, publicID string) (*Preferences, error)
}

// ContactStore defines persistence for the contact graph.
type ContactStore interface {
	AddContact(ctx context.Context, contact *Contact) error
	ListContacts(ctx context.Context, ownerUID string, contactType ContactType) ([]*Contact, error)
	ToggleStar(ctx context.Context, ownerUID, contactUID string) (bool, error)
	RemoveContact(ctx context.Context, ownerUID, contactUID string) error
}

// ChatStore defines persistence for chats and their message logs.
type ChatStore interface {
	GetOrCreateChat(ctx context.Context, uidA, uidB string) (*Chat, error)
	GetChat(ctx context.Context, id int64) (*Chat, error)
	AppendMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*Message, error)
}

// ProductStore defines persistence for the inventory ledger.
type ProductStore interface {
	InsertProduct(ctx context.Context, p *Product) (int64, error)
	UpdateProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context, ownerUID string) ([]*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	InventorySummary(ctx context.Context, ownerUID string) (*InventorySummary, error)
}

// Store combines all component interfaces backed by one storage handle.
type Store interface {
	UserStore
	ContactStore
	ChatStore
	ProductStore

	// Close releases any resources held by the store
	Close() error
}
