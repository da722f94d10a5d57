package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee roles
const (
	EmployeeRoleWorker         = "WORKER"
	EmployeeRoleAdministrative = "ADMINISTRATIVE"
)

// Employee represents a workshop employee. HourlyRate carries at most one
// decimal place and is only read by the costing engine, never written by it.
type Employee struct {
	ID               int64           `json:"id,string" gorm:"primaryKey"`
	FullName         string          `json:"full_name" gorm:"size:256"`
	PhoneNumber      string          `json:"phone_number" gorm:"size:256"`
	Role             string          `json:"role" gorm:"size:32"` // WORKER | ADMINISTRATIVE
	LaborDescription string          `json:"labor_description" gorm:"size:256"`
	HourlyRate       decimal.Decimal `json:"hourly_rate" gorm:"type:decimal(10,1)"`
	Address          string          `json:"address" gorm:"size:256"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName returns table name
func (Employee) TableName() string {
	return "employees"
}
