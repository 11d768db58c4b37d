package model

import "github.com/shopspring/decimal"

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

type Product struct {
	BaseModel
	SKU         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"` // never negative
	Status      ProductStatus   `gorm:"type:varchar(20);default:'active'" json:"status" validate:"omitempty,oneof=active inactive discontinued"`
	Featured    bool            `gorm:"default:false" json:"featured"`

	// Relations
	Orders    []Order         `json:"orders,omitempty" validate:"-"`
	Movements []StockMovement `json:"movements,omitempty" validate:"-"`
}
