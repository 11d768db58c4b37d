package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order snapshots unit and total price at creation time; later product
// price changes do not touch existing orders.
type Order struct {
	BaseModel
	OrderNumber string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `json:"user,omitempty"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     *Product        `json:"product,omitempty"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	Status      OrderStatus     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes"`
	OrderedAt   time.Time       `gorm:"not null" json:"ordered_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"` // set when status becomes completed
}
