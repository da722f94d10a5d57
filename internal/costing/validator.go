package costing

import "context"

// ReferentialValidator confirms the referenced entities of an association
// mutation before any write happens. It never writes anything itself.
type ReferentialValidator struct {
	entities EntityRepository
}

func NewReferentialValidator(entities EntityRepository) *ReferentialValidator {
	return &ReferentialValidator{entities: entities}
}

// CheckProduct fails with NotFoundError when the product is missing.
func (v *ReferentialValidator) CheckProduct(ctx context.Context, productID int64) error {
	exists, err := v.entities.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Kind: KindProduct, ID: productID}
	}
	return nil
}

// CheckCounterpart fails with NotFoundError when the employee, equipment or
// material referenced by the association kind is missing.
func (v *ReferentialValidator) CheckCounterpart(ctx context.Context, kind AssocKind, counterpartID int64) error {
	exists, err := v.entities.CounterpartExists(ctx, kind, counterpartID)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Kind: kind.counterpartKind(), ID: counterpartID}
	}
	return nil
}

// CheckNoDuplicate fails with DuplicateAssociationError when the
// (product, counterpart) pair is already linked. The composite unique index
// on the join table backstops this check at the storage layer.
func (v *ReferentialValidator) CheckNoDuplicate(ctx context.Context, repo AssociationRepository, productID, counterpartID int64) error {
	linked, err := repo.Exists(ctx, productID, counterpartID)
	if err != nil {
		return err
	}
	if linked {
		return &DuplicateAssociationError{ProductID: productID, CounterpartID: counterpartID}
	}
	return nil
}
