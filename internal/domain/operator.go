package domain

import "time"

// Operator roles
const (
	OperatorRoleAdmin = "ADMIN"
	OperatorRoleUser  = "USER"
)

// Operator is a backend user allowed to call the admin API.
type Operator struct {
	ID        int64     `json:"id,string" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"size:256"`
	Email     string    `json:"email" gorm:"size:256;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:256"`
	Role      string    `json:"role" gorm:"size:32"` // ADMIN | USER
	Status    string    `json:"status" gorm:"size:20;default:'enabled'"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns table name
func (Operator) TableName() string {
	return "operators"
}
