package repository

import (
	"time"

	"go-shop-admin/internal/model"

	"gorm.io/gorm"
)

// MovementPoint is one day of aggregated stock movement for the chart.
type MovementPoint struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type StockMovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindAll(page, limit int) ([]model.StockMovement, int64, error)
	GetMovementSeries(startDate, endDate time.Time) ([]MovementPoint, error)
}

type stockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepo(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db}
}

// Create runs on the caller's transaction handle so the movement row
// commits or rolls back together with the stock change it records.
func (r *stockMovementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockMovementRepo) FindAll(page, limit int) ([]model.StockMovement, int64, error) {
	var total int64
	if err := r.db.Model(&model.StockMovement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []model.StockMovement
	err := r.db.Scopes(paginate(page, limit)).
		Preload("Product").
		Order("created_at DESC").
		Find(&movements).Error
	return movements, total, err
}

func (r *stockMovementRepo) GetMovementSeries(startDate, endDate time.Time) ([]MovementPoint, error) {
	var results []MovementPoint

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN direction = 'OUT' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point MovementPoint
		if err := rows.Scan(&point.Date, &point.Inbound, &point.Outbound); err != nil {
			return nil, err
		}
		results = append(results, point)
	}

	return results, rows.Err()
}
