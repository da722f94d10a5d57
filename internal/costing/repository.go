package costing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/pkg/common"
)

// CostLine is one live association row joined with its counterpart's current
// rate or unit price. The join happens at read time, so a rate change on the
// counterpart shows up on the next read without being copied anywhere.
type CostLine struct {
	Amount int             `gorm:"column:amount"`
	Rate   decimal.Decimal `gorm:"column:rate"`
}

// AssociationRepository handles database access for one association kind.
// It never recomputes anything itself; the service couples every successful
// mutation to an engine invocation.
type AssociationRepository interface {
	// Create inserts a usage row and returns its id.
	Create(ctx context.Context, productID, counterpartID int64, amount int) (int64, error)

	// UpdateAmount mutates only the hours/quantity field.
	UpdateAmount(ctx context.Context, id int64, amount int) error

	// Delete removes the row unconditionally if present.
	Delete(ctx context.Context, id int64) error

	// ResolveProduct returns the owning product id of one usage row.
	ResolveProduct(ctx context.Context, id int64) (int64, error)

	// Exists reports whether a (product, counterpart) pair is already linked.
	Exists(ctx context.Context, productID, counterpartID int64) (bool, error)

	// ListForProduct returns all live rows for a product with the
	// counterpart's current rate attached. Used exclusively by the engine.
	ListForProduct(ctx context.Context, productID int64) ([]CostLine, error)

	// CountForCounterpart counts live rows referencing a counterpart entity.
	CountForCounterpart(ctx context.Context, counterpartID int64) (int64, error)

	// DeleteForProduct removes every row of a product (cascade path).
	DeleteForProduct(ctx context.Context, productID int64) error
}

// EntityRepository provides the existence lookups the referential validator
// needs from the surrounding CRUD layer.
type EntityRepository interface {
	ProductExists(ctx context.Context, id int64) (bool, error)
	CounterpartExists(ctx context.Context, kind AssocKind, id int64) (bool, error)
}

func notFoundAs(err error, kind string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return err
}

// GormLaborRepository is the GORM implementation of AssociationRepository
// for the product-employee relation.
type GormLaborRepository struct {
	db *gorm.DB
}

func NewGormLaborRepository(db *gorm.DB) *GormLaborRepository {
	return &GormLaborRepository{db: db}
}

func (r *GormLaborRepository) Create(ctx context.Context, productID, employeeID int64, hours int) (int64, error) {
	row := domain.LaborUsage{
		ID:         common.UUIDint64(),
		ProductID:  productID,
		EmployeeID: employeeID,
		Hours:      hours,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *GormLaborRepository) UpdateAmount(ctx context.Context, id int64, hours int) error {
	return r.db.WithContext(ctx).
		Model(&domain.LaborUsage{}).
		Where("id = ?", id).
		Update("hours", hours).Error
}

func (r *GormLaborRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.LaborUsage{}, id).Error
}

func (r *GormLaborRepository) ResolveProduct(ctx context.Context, id int64) (int64, error) {
	var row domain.LaborUsage
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return 0, notFoundAs(err, KindAssociation, id)
	}
	return row.ProductID, nil
}

func (r *GormLaborRepository) Exists(ctx context.Context, productID, employeeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.LaborUsage{}).
		Where("product_id = ? AND employee_id = ?", productID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormLaborRepository) ListForProduct(ctx context.Context, productID int64) ([]CostLine, error) {
	var lines []CostLine
	err := r.db.WithContext(ctx).
		Table("products_employees").
		Select("products_employees.hours AS amount, employees.hourly_rate AS rate").
		Joins("JOIN employees ON employees.id = products_employees.employee_id").
		Where("products_employees.product_id = ?", productID).
		Scan(&lines).Error
	return lines, err
}

func (r *GormLaborRepository) CountForCounterpart(ctx context.Context, employeeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.LaborUsage{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

func (r *GormLaborRepository) DeleteForProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.LaborUsage{}).Error
}

// GormEquipmentRepository is the GORM implementation of AssociationRepository
// for the product-equipment relation.
type GormEquipmentRepository struct {
	db *gorm.DB
}

func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

func (r *GormEquipmentRepository) Create(ctx context.Context, productID, equipmentID int64, hours int) (int64, error) {
	row := domain.EquipmentUsage{
		ID:          common.UUIDint64(),
		ProductID:   productID,
		EquipmentID: equipmentID,
		Hours:       hours,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *GormEquipmentRepository) UpdateAmount(ctx context.Context, id int64, hours int) error {
	return r.db.WithContext(ctx).
		Model(&domain.EquipmentUsage{}).
		Where("id = ?", id).
		Update("hours", hours).Error
}

func (r *GormEquipmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.EquipmentUsage{}, id).Error
}

func (r *GormEquipmentRepository) ResolveProduct(ctx context.Context, id int64) (int64, error) {
	var row domain.EquipmentUsage
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return 0, notFoundAs(err, KindAssociation, id)
	}
	return row.ProductID, nil
}

func (r *GormEquipmentRepository) Exists(ctx context.Context, productID, equipmentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.EquipmentUsage{}).
		Where("product_id = ? AND equipment_id = ?", productID, equipmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormEquipmentRepository) ListForProduct(ctx context.Context, productID int64) ([]CostLine, error) {
	var lines []CostLine
	err := r.db.WithContext(ctx).
		Table("products_equipments").
		Select("products_equipments.hours AS amount, equipments.hourly_rate AS rate").
		Joins("JOIN equipments ON equipments.id = products_equipments.equipment_id").
		Where("products_equipments.product_id = ?", productID).
		Scan(&lines).Error
	return lines, err
}

func (r *GormEquipmentRepository) CountForCounterpart(ctx context.Context, equipmentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.EquipmentUsage{}).
		Where("equipment_id = ?", equipmentID).
		Count(&count).Error
	return count, err
}

func (r *GormEquipmentRepository) DeleteForProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.EquipmentUsage{}).Error
}

// GormMaterialRepository is the GORM implementation of AssociationRepository
// for the product-material relation.
type GormMaterialRepository struct {
	db *gorm.DB
}

func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

func (r *GormMaterialRepository) Create(ctx context.Context, productID, materialID int64, quantity int) (int64, error) {
	row := domain.MaterialUsage{
		ID:         common.UUIDint64(),
		ProductID:  productID,
		MaterialID: materialID,
		Quantity:   quantity,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *GormMaterialRepository) UpdateAmount(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&domain.MaterialUsage{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *GormMaterialRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.MaterialUsage{}, id).Error
}

func (r *GormMaterialRepository) ResolveProduct(ctx context.Context, id int64) (int64, error) {
	var row domain.MaterialUsage
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return 0, notFoundAs(err, KindAssociation, id)
	}
	return row.ProductID, nil
}

func (r *GormMaterialRepository) Exists(ctx context.Context, productID, materialID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.MaterialUsage{}).
		Where("product_id = ? AND material_id = ?", productID, materialID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormMaterialRepository) ListForProduct(ctx context.Context, productID int64) ([]CostLine, error) {
	var lines []CostLine
	err := r.db.WithContext(ctx).
		Table("products_materials").
		Select("products_materials.quantity AS amount, materials.unit_price AS rate").
		Joins("JOIN materials ON materials.id = products_materials.material_id").
		Where("products_materials.product_id = ?", productID).
		Scan(&lines).Error
	return lines, err
}

func (r *GormMaterialRepository) CountForCounterpart(ctx context.Context, materialID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.MaterialUsage{}).
		Where("material_id = ?", materialID).
		Count(&count).Error
	return count, err
}

func (r *GormMaterialRepository) DeleteForProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.MaterialUsage{}).Error
}

// GormEntityRepository is the GORM implementation of EntityRepository.
type GormEntityRepository struct {
	db *gorm.DB
}

func NewGormEntityRepository(db *gorm.DB) *GormEntityRepository {
	return &GormEntityRepository{db: db}
}

func (r *GormEntityRepository) ProductExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *GormEntityRepository) CounterpartExists(ctx context.Context, kind AssocKind, id int64) (bool, error) {
	var model interface{}
	switch kind {
	case AssocLabor:
		model = &domain.Employee{}
	case AssocEquipment:
		model = &domain.Equipment{}
	default:
		model = &domain.Material{}
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// repositoryFor returns the GORM repository of one association kind bound to
// the given handle, which may be a transaction.
func repositoryFor(db *gorm.DB, kind AssocKind) AssociationRepository {
	switch kind {
	case AssocLabor:
		return NewGormLaborRepository(db)
	case AssocEquipment:
		return NewGormEquipmentRepository(db)
	default:
		return NewGormMaterialRepository(db)
	}
}
