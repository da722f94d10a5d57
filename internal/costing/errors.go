package costing

import (
	"errors"
	"fmt"
)

// Entity kinds used by NotFoundError.
const (
	KindProduct     = "product"
	KindEmployee    = "employee"
	KindEquipment   = "equipment"
	KindMaterial    = "material"
	KindAssociation = "association"
)

var (
	// ErrInvalidAmount rejects hours/quantity values that are not positive integers.
	ErrInvalidAmount = errors.New("hours/quantity must be a positive integer")

	// ErrInvalidPrecision rejects money/rate values that are negative,
	// unparsable, or carry more fractional digits than their column allows.
	ErrInvalidPrecision = errors.New("value exceeds the allowed decimal precision")

	// ErrInvalidScope rejects a recompute scope that does not resolve a
	// single product.
	ErrInvalidScope = errors.New("scope must resolve exactly one product")

	// ErrCounterpartInUse restricts deleting an employee, equipment or
	// material that live usage rows still reference.
	ErrCounterpartInUse = errors.New("entity is still referenced by product associations")
)

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// DuplicateAssociationError reports a creation that would link the same
// (product, counterpart) pair twice.
type DuplicateAssociationError struct {
	ProductID     int64
	CounterpartID int64
}

func (e *DuplicateAssociationError) Error() string {
	return fmt.Sprintf("product %d is already associated with entity %d", e.ProductID, e.CounterpartID)
}

// IsNotFound reports whether err is a NotFoundError of any kind.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDuplicate reports whether err is a DuplicateAssociationError.
func IsDuplicate(err error) bool {
	var dup *DuplicateAssociationError
	return errors.As(err, &dup)
}
