package costing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftline/workshop/internal/domain"
)

func TestCreateValidatesBeforeWriting(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	t.Run("missing product", func(t *testing.T) {
		_, err := svc.Create(ctx, AssocLabor, 999, f.employee.ID, 8)
		require.Error(t, err)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, KindProduct, nf.Kind)
	})

	t.Run("missing counterpart", func(t *testing.T) {
		_, err := svc.Create(ctx, AssocEquipment, f.product.ID, 999, 8)
		require.Error(t, err)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, KindEquipment, nf.Kind)
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, -3)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	// none of the failures above may have written anything
	var count int64
	require.NoError(t, db.Model(&domain.LaborUsage{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&domain.EquipmentUsage{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	p := fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.IsZero())
}

func TestCreateDuplicateLeavesStateUnchanged(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 8)
	require.NoError(t, err)
	before := fetchProduct(t, db, f.product.ID).ProductionCost

	_, err = svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 2)
	require.Error(t, err)
	var dup *DuplicateAssociationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, f.product.ID, dup.ProductID)
	assert.Equal(t, f.employee.ID, dup.CounterpartID)

	var count int64
	require.NoError(t, db.Model(&domain.LaborUsage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	after := fetchProduct(t, db, f.product.ID).ProductionCost
	assert.Equal(t, before.String(), after.String())
}

func TestUpdateAmountRecomputes(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	usageID, err := svc.Create(ctx, AssocMaterial, f.product.ID, f.material.ID, 20)
	require.NoError(t, err)
	p := fetchProduct(t, db, f.product.ID)
	require.True(t, p.ProductionCost.Equal(decimal.RequireFromString("45.00")))

	require.NoError(t, svc.UpdateAmount(ctx, AssocMaterial, usageID, 10))
	p = fetchProduct(t, db, f.product.ID)
	assert.True(t, p.ProductionCost.Equal(decimal.RequireFromString("22.50")),
		"got %s", p.ProductionCost)

	err = svc.UpdateAmount(ctx, AssocMaterial, usageID+1, 5)
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, KindAssociation, nf.Kind)

	assert.ErrorIs(t, svc.UpdateAmount(ctx, AssocMaterial, usageID, 0), ErrInvalidAmount)
}

func TestDeleteMissingAssociation(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAssociationService(db)

	err := svc.Delete(context.Background(), AssocLabor, 12345)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDeleteProductCascades(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 8)
	require.NoError(t, err)
	_, err = svc.Create(ctx, AssocEquipment, f.product.ID, f.equipment.ID, 4)
	require.NoError(t, err)
	_, err = svc.Create(ctx, AssocMaterial, f.product.ID, f.material.ID, 20)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, f.product.ID))

	for _, model := range []interface{}{
		&domain.LaborUsage{}, &domain.EquipmentUsage{}, &domain.MaterialUsage{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}
	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// the counterpart entities themselves stay
	require.NoError(t, db.Model(&domain.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCounterpartRestricted(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	svc := NewAssociationService(db)
	ctx := context.Background()

	usageID, err := svc.Create(ctx, AssocLabor, f.product.ID, f.employee.ID, 8)
	require.NoError(t, err)

	err = svc.DeleteCounterpart(ctx, AssocLabor, f.employee.ID)
	assert.ErrorIs(t, err, ErrCounterpartInUse)

	// everything untouched
	var count int64
	require.NoError(t, db.Model(&domain.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&domain.LaborUsage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// once the usage row is gone the delete goes through
	require.NoError(t, svc.Delete(ctx, AssocLabor, usageID))
	require.NoError(t, svc.DeleteCounterpart(ctx, AssocLabor, f.employee.ID))
	require.NoError(t, db.Model(&domain.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
