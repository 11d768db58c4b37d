package repository

import (
	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows and pages order listings.
type OrderFilter struct {
	Status model.OrderStatus
	UserID uuid.UUID
	Search string // matches the order number
	Page   int
	Limit  int
}

// OrderStats is the per-status breakdown plus completed revenue.
type OrderStats struct {
	Total        int64           `json:"total"`
	Pending      int64           `json:"pending"`
	Processing   int64           `json:"processing"`
	Completed    int64           `json:"completed"`
	Cancelled    int64           `json:"cancelled"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	Update(tx *gorm.DB, order *model.Order) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	FindAll(filter OrderFilter) ([]model.Order, int64, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	ExistsByNumber(tx *gorm.DB, number string) (bool, error)
	CountByProduct(productID uuid.UUID) (int64, error)
	GetStats() (*OrderStats, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) Update(tx *gorm.DB, order *model.Order) error {
	return tx.Save(order).Error
}

func (r *orderRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Order{}, "id = ?", id).Error
}

func (r *orderRepo) FindAll(filter OrderFilter) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != uuid.Nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := query.Scopes(paginate(filter.Page, filter.Limit)).
		Preload("User").Preload("Product").
		Order("ordered_at DESC").
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("User").Preload("Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ExistsByNumber looks at soft-deleted rows too: the unique index on
// order_number spans them.
func (r *orderRepo) ExistsByNumber(tx *gorm.DB, number string) (bool, error) {
	var count int64
	err := tx.Unscoped().Model(&model.Order{}).
		Where("order_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) CountByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *orderRepo) GetStats() (*OrderStats, error) {
	var stats OrderStats

	rows, err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status model.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case model.OrderStatusPending:
			stats.Pending = count
		case model.OrderStatusProcessing:
			stats.Processing = count
		case model.OrderStatusCompleted:
			stats.Completed = count
		case model.OrderStatusCancelled:
			stats.Cancelled = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
