package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment represents a machine that can be used to make a product.
type Equipment struct {
	ID         int64           `json:"id,string" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"size:256;index"`
	HourlyRate decimal.Decimal `json:"hourly_rate" gorm:"type:decimal(10,1)"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName returns table name
func (Equipment) TableName() string {
	return "equipments"
}
