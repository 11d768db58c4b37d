package service

import (
	"errors"
	"fmt"

	"go-shop-admin/internal/metrics"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockDirection string

const (
	StockIncrease StockDirection = "increase"
	StockDecrease StockDirection = "decrease"
)

// StockLedger is the only place product stock gets mutated. It does no
// transaction management of its own: the caller owns the surrounding
// transaction and passes its handle in.
type StockLedger interface {
	Adjust(tx *gorm.DB, productID uuid.UUID, quantity int, direction StockDirection, reference string) (*model.Product, error)
}

type stockLedger struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewStockLedger(products repository.ProductRepository, movements repository.StockMovementRepository) StockLedger {
	return &stockLedger{products: products, movements: movements}
}

// Adjust locks the product row, applies the stock change, and records a
// movement row on the same transaction handle. A decrease larger than
// the current stock fails with ErrInsufficientStock and writes nothing.
func (s *stockLedger) Adjust(tx *gorm.DB, productID uuid.UUID, quantity int, direction StockDirection, reference string) (*model.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("stock adjustment quantity must be positive, got %d", quantity)
	}

	product, err := s.products.FindByIDForUpdate(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var movementDirection model.MovementDirection
	switch direction {
	case StockIncrease:
		product.Stock += quantity
		movementDirection = model.MovementIn
	case StockDecrease:
		if quantity > product.Stock {
			return nil, ErrInsufficientStock
		}
		product.Stock -= quantity
		movementDirection = model.MovementOut
	default:
		return nil, fmt.Errorf("unknown stock direction %q", direction)
	}

	if err := s.products.UpdateStock(tx, product.ID, product.Stock); err != nil {
		return nil, err
	}

	movement := &model.StockMovement{
		ProductID: product.ID,
		Direction: movementDirection,
		Quantity:  quantity,
		Reference: reference,
	}
	if err := s.movements.Create(tx, movement); err != nil {
		return nil, err
	}

	metrics.StockAdjustmentsTotal.WithLabelValues(string(direction)).Inc()
	return product, nil
}
