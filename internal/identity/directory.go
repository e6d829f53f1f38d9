// ABOUTME: Identity directory: user lookup by public ID and preference updates
// ABOUTME: Display name validation lives here because it is a data-integrity rule

package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

// ErrEmptyDisplayName is returned when a display name update is empty or
// whitespace-only.
var ErrEmptyDisplayName = errors.New("display name cannot be empty")

// Directory resolves users by public ID and manages their preference fields.
type Directory struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewDirectory creates a directory backed by the given user store.
func NewDirectory(users store.UserStore) *Directory {
	return &Directory{
		users:  users,
		logger: slog.Default().With("component", "identity"),
	}
}

// FindByPublicID resolves a user by their public ID, as entered when adding
// a contact. The returned User carries no password hash.
// Returns store.ErrNotFound if no user has that ID.
func (d *Directory) FindByPublicID(ctx context.Context, publicID string) (*store.User, error) {
	user, err := d.users.GetUserByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateDisplayName changes the user's own display name. Contact edges that
// snapshotted the old name are intentionally left as they were.
func (d *Directory) UpdateDisplayName(ctx context.Context, publicID, displayName string) error {
	if strings.TrimSpace(displayName) == "" {
		return ErrEmptyDisplayName
	}
	return d.users.UpdateDisplayName(ctx, publicID, displayName)
}

// Preferences returns the user's settings projection.
func (d *Directory) Preferences(ctx context.Context, publicID string) (*store.Preferences, error) {
	return d.users.GetPreferences(ctx, publicID)
}

// SetTheme saves the user's theme preference.
func (d *Directory) SetTheme(ctx context.Context, publicID string, theme store.Theme) error {
	if err := d.users.UpdateTheme(ctx, publicID, theme); err != nil {
		return err
	}
	d.logger.Debug("set theme", "uid", publicID, "theme", theme)
	return nil
}
