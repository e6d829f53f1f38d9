// ABOUTME: Inventory ledger: per-owner product upserts and aggregate summaries
// ABOUTME: Profit is always recomputed from sale minus net; caller-supplied values are ignored

package inventory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

// ErrMissingField is returned when a product lacks its owner, code, or name
var ErrMissingField = errors.New("missing required product field")

// ErrNegativeValue is returned when quantity or a monetary value is negative
var ErrNegativeValue = errors.New("quantity and values must be non-negative")

// Ledger manages an owner's product records.
type Ledger struct {
	products store.ProductStore
	logger   *slog.Logger
}

// NewLedger creates an inventory ledger backed by the given store.
func NewLedger(products store.ProductStore) *Ledger {
	return &Ledger{
		products: products,
		logger:   slog.Default().With("component", "inventory"),
	}
}

// Upsert inserts or updates a product, keyed on presence of p.ID: zero means
// insert, non-zero means update of that exact record. Profit is recomputed
// as sale minus net regardless of what the caller put in ProfitValue. A code
// collision with another of the owner's records returns
// store.ErrDuplicateCode on either path. Returns the product's ID.
func (l *Ledger) Upsert(ctx context.Context, p *store.Product) (int64, error) {
	if p.OwnerUID == "" || p.Code == "" || p.Name == "" {
		return 0, ErrMissingField
	}
	if p.Quantity < 0 || p.NetValue < 0 || p.SaleValue < 0 {
		return 0, ErrNegativeValue
	}

	p.ProfitValue = p.SaleValue - p.NetValue

	if p.ID == 0 {
		return l.products.InsertProduct(ctx, p)
	}
	if err := l.products.UpdateProduct(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// List returns all of the owner's products, name ascending.
func (l *Ledger) List(ctx context.Context, ownerUID string) ([]*store.Product, error) {
	return l.products.ListProducts(ctx, ownerUID)
}

// Delete removes a product by ID. Deleting a missing product is not an error.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	return l.products.DeleteProduct(ctx, id)
}

// Summarize aggregates the owner's products in a single pass.
func (l *Ledger) Summarize(ctx context.Context, ownerUID string) (*store.InventorySummary, error) {
	return l.products.InventorySummary(ctx, ownerUID)
}
