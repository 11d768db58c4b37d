package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderService struct {
	createFn func(*service.CreateOrderRequest) (*model.Order, error)
	getFn    func(uuid.UUID) (*model.Order, error)
	statsFn  func() (*repository.OrderStats, error)
}

func (s *stubOrderService) Create(req *service.CreateOrderRequest) (*model.Order, error) {
	return s.createFn(req)
}

func (s *stubOrderService) Update(id uuid.UUID, req *service.UpdateOrderRequest) (*model.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (s *stubOrderService) Delete(id uuid.UUID) error {
	return service.ErrOrderNotFound
}

func (s *stubOrderService) UpdateStatus(id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (s *stubOrderService) List(filter repository.OrderFilter) ([]model.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderService) Get(id uuid.UUID) (*model.Order, error) {
	return s.getFn(id)
}

func (s *stubOrderService) Statistics() (*repository.OrderStats, error) {
	return s.statsFn()
}

func newOrderApp(stub *stubOrderService) *fiber.App {
	app := fiber.New()
	h := NewOrderHandler(stub)
	app.Post("/api/v1/orders", h.CreateOrder)
	app.Get("/api/v1/orders/statistics", h.GetOrderStatistics)
	app.Get("/api/v1/orders/:id", h.GetOrder)
	app.Delete("/api/v1/orders/:id", h.DeleteOrder)
	return app
}

func TestCreateOrderHandler(t *testing.T) {
	order := &model.Order{
		OrderNumber: "ORD-X1Y2Z3-20250601",
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("20.00"),
		TotalPrice:  decimal.RequireFromString("60.00"),
		Status:      model.OrderStatusPending,
	}
	stub := &stubOrderService{
		createFn: func(req *service.CreateOrderRequest) (*model.Order, error) {
			return order, nil
		},
	}
	app := newOrderApp(stub)

	body, _ := json.Marshal(fiber.Map{
		"user_id":    uuid.New(),
		"product_id": uuid.New(),
		"quantity":   3,
	})
	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	payload, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(payload), "ORD-X1Y2Z3-20250601")
}

func TestCreateOrderHandlerInsufficientStock(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(req *service.CreateOrderRequest) (*model.Order, error) {
			return nil, service.ErrInsufficientStock
		},
	}
	app := newOrderApp(stub)

	body, _ := json.Marshal(fiber.Map{
		"user_id":    uuid.New(),
		"product_id": uuid.New(),
		"quantity":   10,
	})
	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	stub := &stubOrderService{
		getFn: func(id uuid.UUID) (*model.Order, error) {
			return nil, service.ErrOrderNotFound
		},
	}
	app := newOrderApp(stub)

	req := httptest.NewRequest("GET", "/api/v1/orders/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetOrderHandlerInvalidID(t *testing.T) {
	stub := &stubOrderService{}
	app := newOrderApp(stub)

	req := httptest.NewRequest("GET", "/api/v1/orders/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestOrderStatisticsHandler(t *testing.T) {
	stub := &stubOrderService{
		statsFn: func() (*repository.OrderStats, error) {
			return &repository.OrderStats{
				Total:        5,
				Pending:      2,
				Completed:    2,
				Cancelled:    1,
				TotalRevenue: decimal.RequireFromString("200.00"),
			}, nil
		},
	}
	app := newOrderApp(stub)

	req := httptest.NewRequest("GET", "/api/v1/orders/statistics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stats repository.OrderStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, int64(5), stats.Total)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("200.00")))
}
