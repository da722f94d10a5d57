package costing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/pkg/common"
)

// 8h labor @ 15.0 + 4h equipment @ 10.5 + 20 units @ 2.25
// = 120.00 + 42.00 + 45.00 = 207.00
func TestRecomputeWorkedExample(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 8)
	require.NoError(t, err)
	equipUsageID, err := svc.Create(ctx, AssocEquipment, f.product.ID, f.equipment.ID, 4)
	require.NoError(t, err)
	_, err = svc.Create(ctx, AssocMaterial, f.product.ID, f.material.ID, 20)
	require.NoError(t, err)

	p := fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.Equal(decimal.RequireFromString("207.00")),
		"got %s", p.ProductionCost)

	// deleting the equipment usage drops its 42.00 contribution
	require.NoError(t, svc.Delete(ctx, AssocEquipment, equipUsageID))

	p = fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.Equal(decimal.RequireFromString("165.00")),
		"got %s", p.ProductionCost)
}

func TestRecomputeIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 8)
	require.NoError(t, err)

	require.NoError(t, svc.Engine().Recompute(ctx, ProductScope(f.product.ID)))
	first := fetchProduct(t, db, f.product.ID).ProductionCost

	require.NoError(t, svc.Engine().Recompute(ctx, ProductScope(f.product.ID)))
	second := fetchProduct(t, db, f.product.ID).ProductionCost

	assert.Equal(t, first.String(), second.String())
}

func TestRecomputeByAssociationScope(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	usageID, err := svc.Create(ctx, AssocMaterial, f.product.ID, f.material.ID, 20)
	require.NoError(t, err)

	require.NoError(t, svc.Engine().Recompute(ctx, AssociationScope(AssocMaterial, usageID)))
	p := fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.Equal(decimal.RequireFromString("45.00")))

	// an association id that no longer exists cannot resolve a product
	err = svc.Engine().Recompute(ctx, AssociationScope(AssocMaterial, usageID+1))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRecomputeInvalidScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAssociationService(db)

	err := svc.Engine().Recompute(context.Background(), Scope{})
	assert.ErrorIs(t, err, ErrInvalidScope)

	err = svc.Engine().Recompute(context.Background(), ProductScope(0))
	assert.ErrorIs(t, err, ErrInvalidScope)
}

// A product deleted while a recompute is pending is not a failure.
func TestRecomputeVanishedProductNoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAssociationService(db)

	err := svc.Engine().Recompute(context.Background(), ProductScope(424242))
	assert.NoError(t, err)
}

func TestRecomputeRoundsOnlyFinalSum(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	// two labor rows at 3h each: 3×15.0 + 3×15.0 = 90.00
	second := domain.Employee{
		ID:               common.UUIDint64(),
		FullName:         "Luis Vega",
		PhoneNumber:      "555-0102",
		Role:             domain.EmployeeRoleWorker,
		LaborDescription: "finishing",
		HourlyRate:       decimal.RequireFromString("15.0"),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, db.Create(&second).Error)

	_, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 3)
	require.NoError(t, err)
	_, err = svc.Create(ctx, AssocLabor, f.product.ID, second.ID, 3)
	require.NoError(t, err)

	p := fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.Equal(decimal.RequireFromString("90.00")))
}

func TestRecomputeAll(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 8)
	require.NoError(t, err)

	// simulate a stale derived field left behind by a failed recompute
	require.NoError(t, db.Model(&domain.Product{}).
		Where("id = ?", f.product.ID).
		Update("production_cost", decimal.Zero).Error)

	require.NoError(t, svc.Engine().RecomputeAll(ctx))
	p := fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.Equal(decimal.RequireFromString("120.00")))
}

// Two concurrent creations of distinct labor usages for the same product
// both succeed and the settled cost reflects both, regardless of commit
// order.
func TestConcurrentCreationsSettle(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)

	second := domain.Employee{
		ID:               common.UUIDint64(),
		FullName:         "Luis Vega",
		PhoneNumber:      "555-0102",
		Role:             domain.EmployeeRoleWorker,
		LaborDescription: "finishing",
		HourlyRate:       decimal.RequireFromString("15.0"),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, db.Create(&second).Error)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, employeeID := range []int64{f.employee.ID, second.ID} {
		wg.Add(1)
		go func(i int, employeeID int64) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), AssocLabor, f.product.ID, employeeID, 4)
		}(i, employeeID)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// both creations committed before each recompute's read at the latest,
	// so a final recompute settles on the full sum: 2 × 4h × 15.0
	require.NoError(t, svc.Engine().Recompute(context.Background(), ProductScope(f.product.ID)))
	p := fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.Equal(decimal.RequireFromString("120.00")),
		"got %s", p.ProductionCost)
}
