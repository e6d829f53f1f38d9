package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

func setupLedger(t *testing.T) *Ledger {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewLedger(st)
}

func TestLedger_Upsert_InsertThenUpdate(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	p := &store.Product{
		OwnerUID:  "NIM-OWNER1",
		Code:      "P-001",
		Name:      "Widget",
		Quantity:  4,
		NetValue:  10,
		SaleValue: 15,
	}

	id, err := ledger.Upsert(ctx, p)
	require.NoError(t, err)
	require.NotZero(t, id)

	p.ID = id
	p.SaleValue = 20
	again, err := ledger.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	products, err := ledger.List(ctx, "NIM-OWNER1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 20.0, products[0].SaleValue)
	assert.Equal(t, 10.0, products[0].ProfitValue)
}

func TestLedger_Upsert_RecomputesProfit(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	p := &store.Product{
		OwnerUID:    "NIM-OWNER1",
		Code:        "P-001",
		Name:        "Widget",
		Quantity:    1,
		NetValue:    10,
		SaleValue:   15,
		ProfitValue: 999, // deliberately wrong; must be ignored
	}

	_, err := ledger.Upsert(ctx, p)
	require.NoError(t, err)

	products, err := ledger.List(ctx, "NIM-OWNER1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 5.0, products[0].ProfitValue)
}

func TestLedger_Upsert_DuplicateCode(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	_, err := ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "P-001", Name: "Widget", SaleValue: 1})
	require.NoError(t, err)

	_, err = ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "P-001", Name: "Copy", SaleValue: 1})
	assert.ErrorIs(t, err, store.ErrDuplicateCode)
}

func TestLedger_Upsert_Validation(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	_, err := ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "", Name: "Widget"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "P-001", Name: "Widget", NetValue: -1})
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "P-001", Name: "Widget", Quantity: -0.5})
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestLedger_Summarize(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	_, err := ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "P-001", Name: "Low", Quantity: 0.5, NetValue: 10, SaleValue: 15})
	require.NoError(t, err)
	_, err = ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "P-002", Name: "High", Quantity: 2, NetValue: 5, SaleValue: 8})
	require.NoError(t, err)

	summary, err := ledger.Summarize(ctx, "NIM-OWNER1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalProducts)
	assert.InDelta(t, 15.0, summary.TotalNetValue, 1e-9)
	assert.InDelta(t, 8.5, summary.TotalProfitValue, 1e-9)
	assert.Equal(t, int64(1), summary.OutOfStockCount)
}

func TestLedger_Delete(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	id, err := ledger.Upsert(ctx, &store.Product{OwnerUID: "NIM-OWNER1", Code: "P-001", Name: "Widget", SaleValue: 1})
	require.NoError(t, err)

	require.NoError(t, ledger.Delete(ctx, id))
	require.NoError(t, ledger.Delete(ctx, id))

	products, err := ledger.List(ctx, "NIM-OWNER1")
	require.NoError(t, err)
	assert.Empty(t, products)
}
