package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/craftline/workshop/internal/costing"
	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/internal/webserver"
	"github.com/craftline/workshop/pkg/common"
)

type productPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SalesPrice  string `json:"sales_price"`
	Stock       int    `json:"stock"`
}

// registerProductRoutes registers product CRUD endpoints plus the forced
// cost refresh. The derived production_cost is never writable here.
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiPOST("/products/:id/recompute", recomputeProduct)
}

// validateProductPayload normalizes and checks the payload; the sales price
// literal is precision-checked before parsing.
func validateProductPayload(payload *productPayload) (decimal.Decimal, string) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return decimal.Zero, "Name is required"
	}
	if payload.Stock < 0 {
		return decimal.Zero, "Stock must be >= 0"
	}
	if payload.SalesPrice == "" {
		payload.SalesPrice = "0"
	}
	if !costing.ValidatePrecision(payload.SalesPrice, 2) {
		return decimal.Zero, "Sales price must be a non-negative decimal with at most 2 decimal places"
	}
	price, err := decimal.NewFromString(payload.SalesPrice)
	if err != nil {
		return decimal.Zero, "Sales price is not a valid decimal"
	}
	return price, ""
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":              "id",
		"name":            "name",
		"sales_price":     "sales_price",
		"production_cost": "production_cost",
		"stock":           "stock",
		"created_at":      "created_at",
	}
	sortCol, okCol := allowed[sortField]
	if !okCol || sortCol == "" {
		sortCol = "id"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		if db.Dialector.Name() == "postgres" {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	price, msg := validateProductPayload(&payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	now := time.Now()
	p := domain.Product{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: strings.TrimSpace(payload.Description),
		SalesPrice:  price,
		// derived cost starts at zero and is first computed on the first
		// association event
		ProductionCost: decimal.Zero,
		Stock:          payload.Stock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	price, msg := validateProductPayload(&payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p.Name = payload.Name
	p.Description = strings.TrimSpace(payload.Description)
	p.SalesPrice = price
	p.Stock = payload.Stock
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	// cascades the usage rows of all three kinds
	if err := svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return failCosting(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func recomputeProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := svc.Engine().Recompute(c.Request().Context(), costing.ProductScope(id)); err != nil {
		return failCosting(c, err)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}
