package costing

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/pkg/common"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// sqlite allows a single writer; serializing connections makes
	// concurrent callers queue instead of failing with SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

type fixture struct {
	product   domain.Product
	employee  domain.Employee
	equipment domain.Equipment
	material  domain.Material
}

// seedCatalog inserts one product and one counterpart of each kind with the
// rates used by the worked examples: labor 15.0/h, equipment 10.5/h,
// material 2.25/unit.
func seedCatalog(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	now := time.Now()
	f := fixture{
		product: domain.Product{
			ID:         common.UUIDint64(),
			Name:       "oak table",
			SalesPrice: decimal.RequireFromString("350.00"),
			Stock:      5,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		employee: domain.Employee{
			ID:               common.UUIDint64(),
			FullName:         "Ana Torres",
			PhoneNumber:      "555-0101",
			Role:             domain.EmployeeRoleWorker,
			LaborDescription: "carpentry",
			HourlyRate:       decimal.RequireFromString("15.0"),
			CreatedAt:        now,
			UpdatedAt:        now,
		},
		equipment: domain.Equipment{
			ID:         common.UUIDint64(),
			Name:       "table saw",
			HourlyRate: decimal.RequireFromString("10.5"),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		material: domain.Material{
			ID:        common.UUIDint64(),
			Name:      "oak board",
			Type:      domain.MaterialTypeRaw,
			UnitPrice: decimal.RequireFromString("2.25"),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	require.NoError(t, db.Create(&f.product).Error)
	require.NoError(t, db.Create(&f.employee).Error)
	require.NoError(t, db.Create(&f.equipment).Error)
	require.NoError(t, db.Create(&f.material).Error)
	return f
}

func fetchProduct(t *testing.T, db *gorm.DB, id int64) domain.Product {
	t.Helper()
	var p domain.Product
	require.NoError(t, db.First(&p, id).Error)
	return p
}
