package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material types
const (
	MaterialTypeInput = "INPUT"
	MaterialTypeRaw   = "RAW_MATERIAL"
)

// Material represents an input or raw material consumed by a product.
type Material struct {
	ID        int64           `json:"id,string" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:256;index"`
	Type      string          `json:"type" gorm:"size:32"` // INPUT | RAW_MATERIAL
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns table name
func (Material) TableName() string {
	return "materials"
}
