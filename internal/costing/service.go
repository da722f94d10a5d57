package costing

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/craftline/workshop/internal/domain"
)

// AssociationService is the only entry point through which association rows
// may be mutated. Every mutation validates referenced entities first, writes
// through the repository, then recomputes the owning product's cost in the
// same logical operation.
//
// A recompute failure after the association write has committed is surfaced
// but does not roll the write back: the association rows are the source of
// truth and the derived field stays stale until the next successful
// recompute (the nightly reconciliation at the latest).
type AssociationService struct {
	db        *gorm.DB
	validator *ReferentialValidator
	engine    *Engine
}

func NewAssociationService(db *gorm.DB) *AssociationService {
	return &AssociationService{
		db:        db,
		validator: NewReferentialValidator(NewGormEntityRepository(db)),
		engine:    NewEngine(db),
	}
}

// Engine exposes the recompute engine for forced refreshes.
func (s *AssociationService) Engine() *Engine {
	return s.engine
}

// Create links a product to a counterpart entity with the given hours or
// quantity and recomputes the product's cost.
func (s *AssociationService) Create(ctx context.Context, kind AssocKind, productID, counterpartID int64, amount int) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	repo := repositoryFor(s.db, kind)
	if err := s.validator.CheckProduct(ctx, productID); err != nil {
		return 0, err
	}
	if err := s.validator.CheckCounterpart(ctx, kind, counterpartID); err != nil {
		return 0, err
	}
	if err := s.validator.CheckNoDuplicate(ctx, repo, productID, counterpartID); err != nil {
		return 0, err
	}

	id, err := repo.Create(ctx, productID, counterpartID, amount)
	if err != nil {
		return 0, err
	}

	if err := s.engine.Recompute(ctx, ProductScope(productID)); err != nil {
		zap.L().Warn("recompute failed after association create, cost is stale",
			zap.String("kind", string(kind)),
			zap.Int64("product_id", productID),
			zap.Error(err))
		return id, errors.Wrap(err, "recompute after create")
	}
	return id, nil
}

// UpdateAmount mutates only the hours/quantity field of one usage row and
// recomputes the owning product, resolved through the association scope.
func (s *AssociationService) UpdateAmount(ctx context.Context, kind AssocKind, id int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	repo := repositoryFor(s.db, kind)
	if _, err := repo.ResolveProduct(ctx, id); err != nil {
		return err
	}
	if err := repo.UpdateAmount(ctx, id, amount); err != nil {
		return err
	}
	return s.engine.Recompute(ctx, AssociationScope(kind, id))
}

// Delete removes one usage row unconditionally and recomputes the product
// that owned it. The product is resolved before the row disappears.
func (s *AssociationService) Delete(ctx context.Context, kind AssocKind, id int64) error {
	repo := repositoryFor(s.db, kind)
	productID, err := repo.ResolveProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.engine.Recompute(ctx, ProductScope(productID))
}

// DeleteProduct removes a product and cascades deletion of its usage rows of
// all three kinds in one transaction.
func (s *AssociationService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.validator.CheckProduct(ctx, productID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range []AssocKind{AssocLabor, AssocEquipment, AssocMaterial} {
			if err := repositoryFor(tx, kind).DeleteForProduct(ctx, productID); err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Product{}, productID).Error
	})
}

// DeleteCounterpart removes an employee, equipment or material. The delete
// is restricted while any live usage row still references the entity.
func (s *AssociationService) DeleteCounterpart(ctx context.Context, kind AssocKind, id int64) error {
	if err := s.validator.CheckCounterpart(ctx, kind, id); err != nil {
		return err
	}
	count, err := repositoryFor(s.db, kind).CountForCounterpart(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCounterpartInUse
	}

	switch kind {
	case AssocLabor:
		return s.db.WithContext(ctx).Delete(&domain.Employee{}, id).Error
	case AssocEquipment:
		return s.db.WithContext(ctx).Delete(&domain.Equipment{}, id).Error
	default:
		return s.db.WithContext(ctx).Delete(&domain.Material{}, id).Error
	}
}
