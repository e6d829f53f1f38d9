// ABOUTME: SQLite store methods for the per-owner inventory ledger
// ABOUTME: Product codes are unique per owner on both insert and update paths

package store

import (
	"context"
	"fmt"
	"time"
)

// InsertProduct inserts a new product row and returns its ID. The store
// assigns CreatedAt and UpdatedAt. Returns ErrDuplicateCode if the owner
// already has a product with the same code.
func (s *SQLiteStore) InsertProduct(ctx context.Context, p *Product) (int64, error) {
	now := time.Now().UTC().Truncate(time.Second)
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO products (owner_uid, code, name, quantity, net_value, sale_value, profit_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		p.OwnerUID,
		p.Code,
		p.Name,
		p.Quantity,
		p.NetValue,
		p.SaleValue,
		p.ProfitValue,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return 0, ErrDuplicateCode
		}
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	p.ID, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting product id: %w", err)
	}

	s.logger.Debug("inserted product", "id", p.ID, "owner", p.OwnerUID, "code", p.Code)
	return p.ID, nil
}

// UpdateProduct overwrites the identified product's mutable fields and bumps
// UpdatedAt. Returns ErrNotFound if the row doesn't exist, and
// ErrDuplicateCode if the new code collides with another of the owner's
// products.
func (s *SQLiteStore) UpdateProduct(ctx context.Context, p *Product) error {
	now := time.Now().UTC().Truncate(time.Second)

	query := `
		UPDATE products
		SET code = ?, name = ?, quantity = ?, net_value = ?, sale_value = ?, profit_value = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		p.Quantity,
		p.NetValue,
		p.SaleValue,
		p.ProfitValue,
		formatTime(now),
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrDuplicateCode
		}
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	p.UpdatedAt = now
	s.logger.Debug("updated product", "id", p.ID, "code", p.Code)
	return nil
}

// ListProducts returns all of an owner's products, name ascending.
func (s *SQLiteStore) ListProducts(ctx context.Context, ownerUID string) ([]*Product, error) {
	query := `
		SELECT id, owner_uid, code, name, quantity, net_value, sale_value, profit_value, created_at, updated_at
		FROM products
		WHERE owner_uid = ?
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		var createdAt, updatedAt string

		if err := rows.Scan(&p.ID, &p.OwnerUID, &p.Code, &p.Name, &p.Quantity, &p.NetValue, &p.SaleValue, &p.ProfitValue, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}

		p.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		p.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}
	return products, nil
}

// DeleteProduct removes a product by ID. Deleting a non-existent product is
// not an error.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	s.logger.Debug("deleted product", "id", id)
	return nil
}

// InventorySummary aggregates an owner's products in a single pass.
// Out-of-stock counts rows with quantity strictly below 1, so fractional
// unit-based stock below one unit counts as out.
func (s *SQLiteStore) InventorySummary(ctx context.Context, ownerUID string) (*InventorySummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity * net_value), 0),
			COALESCE(SUM(quantity * profit_value), 0),
			COALESCE(SUM(quantity < 1), 0)
		FROM products
		WHERE owner_uid = ?
	`

	var summary InventorySummary
	err := s.db.QueryRowContext(ctx, query, ownerUID).Scan(
		&summary.TotalProducts,
		&summary.TotalNetValue,
		&summary.TotalProfitValue,
		&summary.OutOfStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("querying inventory summary: %w", err)
	}

	return &summary, nil
}
