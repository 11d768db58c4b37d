package service

import (
	"errors"
	"time"

	"go-shop-admin/internal/metrics"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/ws"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(req *CreateOrderRequest) (*model.Order, error)
	Update(id uuid.UUID, req *UpdateOrderRequest) (*model.Order, error)
	Delete(id uuid.UUID) error
	UpdateStatus(id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	List(filter repository.OrderFilter) ([]model.Order, int64, error)
	Get(id uuid.UUID) (*model.Order, error)
	Statistics() (*repository.OrderStats, error)
}

type CreateOrderRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"uuid_required"`
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Notes     string    `json:"notes"`
}

// UpdateOrderRequest carries partial changes; nil fields stay untouched.
type UpdateOrderRequest struct {
	ProductID *uuid.UUID         `json:"product_id"`
	Quantity  *int               `json:"quantity" validate:"omitempty,gt=0"`
	Status    *model.OrderStatus `json:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
	Notes     *string            `json:"notes"`
}

type orderService struct {
	txm      repository.TxManager
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	ledger   StockLedger
	numbers  *OrderNumberGenerator
	hub      *ws.Hub
	now      func() time.Time
}

func NewOrderService(
	txm repository.TxManager,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	ledger StockLedger,
	numbers *OrderNumberGenerator,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		txm:      txm,
		orders:   orders,
		products: products,
		users:    users,
		ledger:   ledger,
		numbers:  numbers,
		hub:      hub,
		now:      time.Now,
	}
}

// Create places an order: stock check, price snapshot, order number,
// stock decrement, and the order row, all in one transaction. Any step
// failing rolls the whole placement back.
func (s *orderService) Create(req *CreateOrderRequest) (*model.Order, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.txm.Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.FindByID(req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		product, err := s.products.FindByIDForUpdate(tx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if req.Quantity > product.Stock {
			metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
			return ErrInsufficientStock
		}

		number, err := s.numbers.Generate(tx)
		if err != nil {
			return err
		}

		if _, err := s.ledger.Adjust(tx, product.ID, req.Quantity, StockDecrease, number); err != nil {
			return err
		}

		unitPrice := product.Price
		order = &model.Order{
			OrderNumber: number,
			UserID:      req.UserID,
			ProductID:   product.ID,
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
			Status:      model.OrderStatusPending,
			Notes:       req.Notes,
			OrderedAt:   s.now(),
		}
		return s.orders.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.publish("order_created", order)
	return s.orders.FindByID(order.ID)
}

// Update applies partial changes. A quantity change moves stock by the
// signed difference through the ledger; a product or quantity change
// re-snapshots prices from the target product's current price.
func (s *orderService) Update(id uuid.UUID, req *UpdateOrderRequest) (*model.Order, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	err := s.txm.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		productID := order.ProductID
		if req.ProductID != nil {
			productID = *req.ProductID
		}
		product, err := s.products.FindByIDForUpdate(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		newQuantity := order.Quantity
		if req.Quantity != nil {
			newQuantity = *req.Quantity
		}

		if diff := newQuantity - order.Quantity; diff > 0 {
			if _, err := s.ledger.Adjust(tx, product.ID, diff, StockDecrease, order.OrderNumber); err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
				}
				return err
			}
		} else if diff < 0 {
			if _, err := s.ledger.Adjust(tx, product.ID, -diff, StockIncrease, order.OrderNumber); err != nil {
				return err
			}
		}

		if productID != order.ProductID || newQuantity != order.Quantity {
			order.UnitPrice = product.Price
			order.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(newQuantity)))
		}
		order.ProductID = productID
		order.Quantity = newQuantity

		if req.Status != nil {
			s.applyStatus(order, *req.Status)
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}

		return s.orders.Update(tx, order)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.publish("order_updated", order)
	return order, nil
}

// Delete removes the order and, unless it already completed, hands the
// quantity back to the product's stock. A product that has since been
// deleted skips restoration without failing the delete.
func (s *orderService) Delete(id uuid.UUID) error {
	err := s.txm.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status != model.OrderStatusCompleted {
			_, err := s.ledger.Adjust(tx, order.ProductID, order.Quantity, StockIncrease, order.OrderNumber)
			if err != nil && !errors.Is(err, ErrProductNotFound) {
				return err
			}
		}

		return s.orders.Delete(tx, order.ID)
	})
	if err != nil {
		return err
	}

	metrics.OrdersDeletedTotal.Inc()
	s.publish("order_deleted", map[string]interface{}{"id": id})
	return nil
}

// UpdateStatus sets the status and stamps processed_at on a transition
// into completed. Stock is untouched, even on cancellation; only a full
// delete restores it.
func (s *orderService) UpdateStatus(id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	switch status {
	case model.OrderStatusPending, model.OrderStatusProcessing,
		model.OrderStatusCompleted, model.OrderStatusCancelled:
	default:
		return nil, errors.New("invalid order status")
	}

	err := s.txm.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		s.applyStatus(order, status)
		return s.orders.Update(tx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(status)).Inc()
	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.publish("order_status_changed", order)
	return order, nil
}

func (s *orderService) List(filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.orders.FindAll(filter)
}

func (s *orderService) Get(id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) Statistics() (*repository.OrderStats, error) {
	return s.orders.GetStats()
}

// applyStatus stamps processed_at exactly once, on the transition into
// completed. Transitions are otherwise unconstrained.
func (s *orderService) applyStatus(order *model.Order, status model.OrderStatus) {
	if status == model.OrderStatusCompleted && order.Status != model.OrderStatusCompleted {
		processedAt := s.now()
		order.ProcessedAt = &processedAt
	}
	order.Status = status
}

func (s *orderService) publish(event string, data interface{}) {
	if s.hub == nil {
		return
	}
	go s.hub.Publish(event, data)
}
