package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a manufactured furniture item.
// ProductionCost is derived from the live usage rows and is written
// exclusively by the costing engine; nothing else may update it.
type Product struct {
	ID             int64           `json:"id,string" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:256;index"`
	Description    string          `json:"description" gorm:"size:256"`
	SalesPrice     decimal.Decimal `json:"sales_price" gorm:"type:decimal(10,2);default:0"`
	ProductionCost decimal.Decimal `json:"production_cost" gorm:"type:decimal(10,2);default:0"`
	Stock          int             `json:"stock" gorm:"default:0"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName returns table name
func (Product) TableName() string {
	return "products"
}
