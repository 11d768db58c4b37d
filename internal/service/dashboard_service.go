package service

import (
	"time"

	"go-shop-admin/internal/repository"
)

type DashboardService interface {
	OrderStats() (*repository.OrderStats, error)
	CatalogStats() (*repository.CatalogStats, error)
	StockMovement(days int) ([]repository.MovementPoint, error)
}

type dashboardService struct {
	orders            repository.OrderRepository
	products          repository.ProductRepository
	movements         repository.StockMovementRepository
	lowStockThreshold int
}

func NewDashboardService(orders repository.OrderRepository, products repository.ProductRepository, movements repository.StockMovementRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{
		orders:            orders,
		products:          products,
		movements:         movements,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *dashboardService) OrderStats() (*repository.OrderStats, error) {
	return s.orders.GetStats()
}

func (s *dashboardService) CatalogStats() (*repository.CatalogStats, error) {
	return s.products.GetCatalogStats(s.lowStockThreshold)
}

func (s *dashboardService) StockMovement(days int) ([]repository.MovementPoint, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.movements.GetMovementSeries(startDate, endDate)
}
