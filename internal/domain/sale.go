package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records a quantity of one product sold to one client.
// Total is captured at sale time from the product's sales price.
type Sale struct {
	ID        int64           `json:"id,string" gorm:"primaryKey"`
	ClientID  int64           `json:"client_id,string" gorm:"index"`
	ProductID int64           `json:"product_id,string" gorm:"index"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns table name
func (Sale) TableName() string {
	return "sales"
}
