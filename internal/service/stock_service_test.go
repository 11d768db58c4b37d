package service

import (
	"testing"

	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(stock int) (*fakeProductRepo, *fakeMovementRepo, StockLedger, uuid.UUID) {
	product := &model.Product{
		SKU:   "LED-001",
		Name:  "Ledger Test Product",
		Price: decimal.RequireFromString("9.99"),
		Stock: stock,
	}
	products := newFakeProductRepo(product)
	movements := newFakeMovementRepo()
	return products, movements, NewStockLedger(products, movements), product.ID
}

func TestAdjustIncrease(t *testing.T) {
	products, movements, ledger, productID := newLedgerFixture(5)

	product, err := ledger.Adjust(nil, productID, 7, StockIncrease, "restock")
	require.NoError(t, err)
	assert.Equal(t, 12, product.Stock)

	stored, err := products.FindByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Stock)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, model.MovementIn, movements.movements[0].Direction)
	assert.Equal(t, 7, movements.movements[0].Quantity)
	assert.Equal(t, "restock", movements.movements[0].Reference)
}

func TestAdjustDecrease(t *testing.T) {
	products, movements, ledger, productID := newLedgerFixture(5)

	product, err := ledger.Adjust(nil, productID, 5, StockDecrease, "")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)

	stored, err := products.FindByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, model.MovementOut, movements.movements[0].Direction)
}

func TestAdjustDecreaseInsufficientStock(t *testing.T) {
	products, movements, ledger, productID := newLedgerFixture(5)

	_, err := ledger.Adjust(nil, productID, 6, StockDecrease, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	stored, err := products.FindByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)
	assert.Empty(t, movements.movements)
}

func TestAdjustRejectsNonPositiveQuantity(t *testing.T) {
	_, _, ledger, productID := newLedgerFixture(5)

	_, err := ledger.Adjust(nil, productID, 0, StockIncrease, "")
	assert.Error(t, err)

	_, err = ledger.Adjust(nil, productID, -3, StockDecrease, "")
	assert.Error(t, err)
}

func TestAdjustUnknownDirection(t *testing.T) {
	_, _, ledger, productID := newLedgerFixture(5)

	_, err := ledger.Adjust(nil, productID, 1, StockDirection("sideways"), "")
	assert.Error(t, err)
}

func TestAdjustProductNotFound(t *testing.T) {
	_, _, ledger, _ := newLedgerFixture(5)

	_, err := ledger.Adjust(nil, uuid.New(), 1, StockIncrease, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
