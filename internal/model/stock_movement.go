package model

import "github.com/google/uuid"

type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// StockMovement is the audit trail written by the stock ledger. The
// authoritative stock count lives on Product; movements are never
// replayed.
type StockMovement struct {
	BaseModel
	ProductID uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product          `json:"product,omitempty"`
	Direction MovementDirection `gorm:"type:varchar(10);not null" json:"direction"`
	Quantity  int               `gorm:"not null" json:"quantity"`
	Reference string            `gorm:"type:varchar(255)" json:"reference"` // e.g. the order number that caused it
}
