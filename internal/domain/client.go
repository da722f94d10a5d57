package domain

import "time"

// Client represents a customer of the workshop.
type Client struct {
	ID          int64     `json:"id,string" gorm:"primaryKey"`
	FullName    string    `json:"full_name" gorm:"size:256"`
	PhoneNumber string    `json:"phone_number" gorm:"size:256"`
	Address     string    `json:"address" gorm:"size:256"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns table name
func (Client) TableName() string {
	return "clients"
}
