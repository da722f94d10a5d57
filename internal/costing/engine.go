package costing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/craftline/workshop/internal/domain"
)

// Engine recomputes the derived production cost of a product from its live
// association rows. It is the only writer of Product.ProductionCost.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Recompute resolves the product the scope points at, reads all three
// association lists inside one transaction, sums them with exact decimal
// arithmetic and persists the rounded total.
//
// The read-and-write runs in a single transaction with a row lock on the
// product (postgres), so concurrent recomputes for the same product
// serialize and the last one to commit reflects the association state it
// read. Recomputes for different products proceed independently.
//
// A product deleted while the recompute was pending is not a failure: the
// call no-ops silently. With no intervening mutation the call is idempotent.
func (e *Engine) Recompute(ctx context.Context, scope Scope) error {
	productID, err := e.resolveProduct(ctx, scope)
	if err != nil {
		return err
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var product domain.Product
		if err := q.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				zap.L().Debug("recompute skipped, product vanished",
					zap.Int64("product_id", productID))
				return nil
			}
			return err
		}

		total := decimal.Zero
		for _, kind := range []AssocKind{AssocLabor, AssocEquipment, AssocMaterial} {
			lines, err := repositoryFor(tx, kind).ListForProduct(ctx, productID)
			if err != nil {
				return err
			}
			total = total.Add(sumLines(lines))
		}

		return tx.Model(&domain.Product{}).
			Where("id = ?", productID).
			Update("production_cost", total.Round(2)).Error
	})
}

// RecomputeAll re-derives the cost of every product. Used by the nightly
// reconciliation job and by import tooling that bypassed the service layer.
func (e *Engine) RecomputeAll(ctx context.Context) error {
	var ids []int64
	if err := e.db.WithContext(ctx).
		Model(&domain.Product{}).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	for _, id := range ids {
		if err := e.Recompute(ctx, ProductScope(id)); err != nil {
			zap.L().Error("cost reconciliation failed",
				zap.Int64("product_id", id),
				zap.Error(err))
		}
	}
	return nil
}

func (e *Engine) resolveProduct(ctx context.Context, scope Scope) (int64, error) {
	switch scope.kind {
	case scopeProduct:
		if scope.id == 0 {
			return 0, ErrInvalidScope
		}
		return scope.id, nil
	case scopeAssociation:
		return repositoryFor(e.db, scope.assoc).ResolveProduct(ctx, scope.id)
	default:
		return 0, ErrInvalidScope
	}
}

// sumLines multiplies each amount by its counterpart rate without rounding;
// the caller rounds once on the final sum.
func sumLines(lines []CostLine) decimal.Decimal {
	sum := decimal.Zero
	for _, ln := range lines {
		sum = sum.Add(ln.Rate.Mul(decimal.NewFromInt(int64(ln.Amount))))
	}
	return sum
}
