// ABOUTME: Contact graph service: directed per-owner edges with type and star flag
// ABOUTME: Rejects self-referential edges; everything else delegates to the store

package contacts

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

// ErrSelfContact is returned when an owner tries to add themselves
var ErrSelfContact = errors.New("cannot add yourself as a contact")

// Graph manages an owner's contact edges. Display names and avatar colors on
// edges are snapshots taken when the contact is added; later renames by the
// counterpart don't propagate, by design.
type Graph struct {
	contacts store.ContactStore
	logger   *slog.Logger
}

// NewGraph creates a contact graph backed by the given store.
func NewGraph(contacts store.ContactStore) *Graph {
	return &Graph{
		contacts: contacts,
		logger:   slog.Default().With("component", "contacts"),
	}
}

// Add creates an edge from owner to contact with the given snapshot fields.
// Adding an already-present pair is a no-op; adding yourself is an error.
func (g *Graph) Add(ctx context.Context, ownerUID, contactUID, snapshotName string, snapshotColor uint32, contactType store.ContactType) error {
	if ownerUID == contactUID {
		return ErrSelfContact
	}

	return g.contacts.AddContact(ctx, &store.Contact{
		OwnerUID:    ownerUID,
		ContactUID:  contactUID,
		DisplayName: snapshotName,
		AvatarColor: snapshotColor,
		Type:        contactType,
	})
}

// List returns the owner's contacts of one type, starred first, then display
// name ascending (byte ordering).
func (g *Graph) List(ctx context.Context, ownerUID string, contactType store.ContactType) ([]*store.Contact, error) {
	return g.contacts.ListContacts(ctx, ownerUID, contactType)
}

// ToggleStar flips the starred flag and returns the new state.
// Returns store.ErrNotFound if the edge doesn't exist.
func (g *Graph) ToggleStar(ctx context.Context, ownerUID, contactUID string) (bool, error) {
	return g.contacts.ToggleStar(ctx, ownerUID, contactUID)
}

// Remove deletes the edge unilaterally. The counterpart's reverse edge, if
// any, stays. Removing a missing edge is not an error.
func (g *Graph) Remove(ctx context.Context, ownerUID, contactUID string) error {
	return g.contacts.RemoveContact(ctx, ownerUID, contactUID)
}
