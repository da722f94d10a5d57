package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craftline/workshop/internal/costing"
	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/internal/webserver"
	"github.com/craftline/workshop/pkg/common"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(domain.Tables...))

	svc = costing.NewAssociationService(db)
	return db
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func seedProductAndEmployee(t *testing.T, db *gorm.DB) (domain.Product, domain.Employee) {
	t.Helper()
	now := time.Now()
	p := domain.Product{
		ID:         common.UUIDint64(),
		Name:       "oak table",
		SalesPrice: decimal.RequireFromString("350.00"),
		Stock:      5,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	e := domain.Employee{
		ID:               common.UUIDint64(),
		FullName:         "Ana Torres",
		PhoneNumber:      "555-0101",
		Role:             domain.EmployeeRoleWorker,
		LaborDescription: "carpentry",
		HourlyRate:       decimal.RequireFromString("15.0"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&e).Error)
	return p, e
}

func TestCreateLaborUsageHandler(t *testing.T) {
	db := setupHandlerDB(t)
	p, e := seedProductAndEmployee(t, db)

	payload := fmt.Sprintf(`{"product_id":"%d","counterpart_id":"%d","amount":8}`, p.ID, e.ID)
	c, rec := newJSONContext(t, http.MethodPost, "/api/products/labor", payload)
	webserver.SetDB(c, db)

	require.NoError(t, createLaborUsage(c))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 0, body["code"])

	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.True(t, got.ProductionCost.Equal(decimal.RequireFromString("120.00")),
		"got %s", got.ProductionCost)
}

func TestCreateUsageHandlerDuplicate(t *testing.T) {
	db := setupHandlerDB(t)
	p, e := seedProductAndEmployee(t, db)

	payload := fmt.Sprintf(`{"product_id":"%d","counterpart_id":"%d","amount":8}`, p.ID, e.ID)
	c, _ := newJSONContext(t, http.MethodPost, "/api/products/labor", payload)
	webserver.SetDB(c, db)
	require.NoError(t, createLaborUsage(c))

	c, rec := newJSONContext(t, http.MethodPost, "/api/products/labor", payload)
	webserver.SetDB(c, db)
	require.NoError(t, createLaborUsage(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "DUPLICATE_ASSOCIATION", body["code"])
}

func TestCreateUsageHandlerMissingProduct(t *testing.T) {
	db := setupHandlerDB(t)
	_, e := seedProductAndEmployee(t, db)

	payload := fmt.Sprintf(`{"product_id":"999","counterpart_id":"%d","amount":8}`, e.ID)
	c, rec := newJSONContext(t, http.MethodPost, "/api/products/labor", payload)
	webserver.SetDB(c, db)

	require.NoError(t, createLaborUsage(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCreateUsageHandlerInvalidAmount(t *testing.T) {
	db := setupHandlerDB(t)
	p, e := seedProductAndEmployee(t, db)

	payload := fmt.Sprintf(`{"product_id":"%d","counterpart_id":"%d","amount":0}`, p.ID, e.ID)
	c, rec := newJSONContext(t, http.MethodPost, "/api/products/labor", payload)
	webserver.SetDB(c, db)

	require.NoError(t, createLaborUsage(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "INVALID_AMOUNT", body["code"])
}

func TestUpdateAndDeleteUsageHandlers(t *testing.T) {
	db := setupHandlerDB(t)
	p, e := seedProductAndEmployee(t, db)

	payload := fmt.Sprintf(`{"product_id":"%d","counterpart_id":"%d","amount":8}`, p.ID, e.ID)
	c, rec := newJSONContext(t, http.MethodPost, "/api/products/labor", payload)
	webserver.SetDB(c, db)
	require.NoError(t, createLaborUsage(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var usage domain.LaborUsage
	require.NoError(t, db.First(&usage).Error)

	c, rec = newJSONContext(t, http.MethodPut, "/api/products/labor/:id", `{"amount":4}`)
	webserver.SetDB(c, db)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", usage.ID))
	require.NoError(t, updateLaborUsage(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.True(t, got.ProductionCost.Equal(decimal.RequireFromString("60.00")),
		"got %s", got.ProductionCost)

	c, rec = newJSONContext(t, http.MethodDelete, "/api/products/labor/:id", "")
	webserver.SetDB(c, db)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", usage.ID))
	require.NoError(t, deleteLaborUsage(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, db.First(&got, p.ID).Error)
	assert.True(t, got.ProductionCost.IsZero(), "got %s", got.ProductionCost)
}

func TestDeleteUsageHandlerBadID(t *testing.T) {
	db := setupHandlerDB(t)
	seedProductAndEmployee(t, db)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/products/labor/:id", "")
	webserver.SetDB(c, db)
	c.SetParamNames("id")
	c.SetParamValues("not-a-number")
	require.NoError(t, deleteLaborUsage(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "INVALID_ID", body["code"])
}
