package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/internal/webserver"
	"github.com/craftline/workshop/pkg/common"
)

type salePayload struct {
	ClientID  int64 `json:"client_id,string"`
	ProductID int64 `json:"product_id,string"`
	Quantity  int   `json:"quantity"`
}

func registerSaleRoutes() {
	webserver.ApiGET("/sales", listSales)
	webserver.ApiGET("/sales/:id", getSale)
	webserver.ApiPOST("/sales", createSale)
}

func listSales(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Sale{})
	if v := c.QueryParam("client_id"); v != "" {
		db = db.Where("client_id = ?", v)
	}
	if v := c.QueryParam("product_id"); v != "" {
		db = db.Where("product_id = ?", v)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query sales", err.Error())
	}

	var rows []domain.Sale
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query sales", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getSale(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}
	var s domain.Sale
	if err := GetDB(c).Where("id = ?", id).First(&s).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Sale not found", nil)
	}
	return ok(c, s)
}

// createSale records the sale and decrements product stock in one
// transaction; stock never goes below zero.
func createSale(c echo.Context) error {
	var payload salePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse sale", err.Error())
	}
	if payload.Quantity <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be a positive integer", nil)
	}

	var sale domain.Sale
	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		var client domain.Client
		if err := tx.First(&client, payload.ClientID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found")
		}
		var product domain.Product
		if err := tx.First(&product, payload.ProductID).Error; err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		if product.Stock < payload.Quantity {
			return echo.NewHTTPError(http.StatusBadRequest, "Insufficient stock")
		}

		if err := tx.Model(&domain.Product{}).
			Where("id = ?", product.ID).
			Update("stock", gorm.Expr("stock - ?", payload.Quantity)).Error; err != nil {
			return err
		}

		sale = domain.Sale{
			ID:        common.UUIDint64(),
			ClientID:  payload.ClientID,
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
			Total:     product.SalesPrice.Mul(decimal.NewFromInt(int64(payload.Quantity))).Round(2),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		if he, okHTTP := err.(*echo.HTTPError); okHTTP {
			return fail(c, he.Code, "INVALID_REQUEST", fmt.Sprint(he.Message), nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create sale", err.Error())
	}
	return ok(c, sale)
}
