package domain

import "time"

// LaborUsage links a product to an employee who worked on it.
// The composite unique index is the storage backstop for the
// application-level duplicate check: one row per (product, employee).
// Deleting a product cascades these rows; deleting an employee with
// live rows is restricted. Both rules are enforced in the costing
// service so they hold regardless of the storage engine.
type LaborUsage struct {
	ID         int64     `json:"id,string" gorm:"primaryKey"`
	ProductID  int64     `json:"product_id,string" gorm:"index;uniqueIndex:idx_labor_product_employee"`
	EmployeeID int64     `json:"employee_id,string" gorm:"uniqueIndex:idx_labor_product_employee"`
	Hours      int       `json:"hours"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns table name
func (LaborUsage) TableName() string {
	return "products_employees"
}

// EquipmentUsage links a product to a machine used to make it.
type EquipmentUsage struct {
	ID          int64     `json:"id,string" gorm:"primaryKey"`
	ProductID   int64     `json:"product_id,string" gorm:"index;uniqueIndex:idx_equipment_product_equipment"`
	EquipmentID int64     `json:"equipment_id,string" gorm:"uniqueIndex:idx_equipment_product_equipment"`
	Hours       int       `json:"hours"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns table name
func (EquipmentUsage) TableName() string {
	return "products_equipments"
}

// MaterialUsage links a product to a material consumed while making it.
type MaterialUsage struct {
	ID         int64     `json:"id,string" gorm:"primaryKey"`
	ProductID  int64     `json:"product_id,string" gorm:"index;uniqueIndex:idx_material_product_material"`
	MaterialID int64     `json:"material_id,string" gorm:"uniqueIndex:idx_material_product_material"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns table name
func (MaterialUsage) TableName() string {
	return "products_materials"
}
