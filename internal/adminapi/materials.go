package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/craftline/workshop/internal/costing"
	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/internal/webserver"
	"github.com/craftline/workshop/pkg/common"
)

type materialPayload struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	UnitPrice string `json:"unit_price"`
}

func registerMaterialRoutes() {
	webserver.ApiGET("/materials", listMaterials)
	webserver.ApiGET("/materials/:id", getMaterial)
	webserver.ApiPOST("/materials", createMaterial)
	webserver.ApiPUT("/materials/:id", updateMaterial)
	webserver.ApiDELETE("/materials/:id", deleteMaterial)
}

func listMaterials(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Material{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if t := strings.TrimSpace(c.QueryParam("type")); t != "" {
		db = db.Where("type = ?", t)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query materials", err.Error())
	}

	var rows []domain.Material
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query materials", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getMaterial(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid material ID", nil)
	}
	var m domain.Material
	if err := GetDB(c).Where("id = ?", id).First(&m).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Material not found", nil)
	}
	return ok(c, m)
}

func createMaterial(c echo.Context) error {
	var payload materialPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse material", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Type != domain.MaterialTypeInput && payload.Type != domain.MaterialTypeRaw {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Type must be 'INPUT' or 'RAW_MATERIAL'", nil)
	}
	price, msg := parseRate(payload.UnitPrice, 2)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	now := time.Now()
	m := domain.Material{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Type:      payload.Type,
		UnitPrice: price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&m).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create material", err.Error())
	}
	return ok(c, m)
}

func updateMaterial(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid material ID", nil)
	}
	var m domain.Material
	if err := GetDB(c).Where("id = ?", id).First(&m).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Material not found", nil)
	}

	var payload materialPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse material", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Type != domain.MaterialTypeInput && payload.Type != domain.MaterialTypeRaw {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Type must be 'INPUT' or 'RAW_MATERIAL'", nil)
	}
	price, msg := parseRate(payload.UnitPrice, 2)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	m.Name = payload.Name
	m.Type = payload.Type
	m.UnitPrice = price
	m.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&m).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update material", err.Error())
	}
	return ok(c, m)
}

func deleteMaterial(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid material ID", nil)
	}
	if err := svc.DeleteCounterpart(c.Request().Context(), costing.AssocMaterial, id); err != nil {
		return failCosting(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
