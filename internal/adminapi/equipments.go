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

type equipmentPayload struct {
	Name       string `json:"name"`
	HourlyRate string `json:"hourly_rate"`
}

func registerEquipmentRoutes() {
	webserver.ApiGET("/equipments", listEquipments)
	webserver.ApiGET("/equipments/:id", getEquipment)
	webserver.ApiPOST("/equipments", createEquipment)
	webserver.ApiPUT("/equipments/:id", updateEquipment)
	webserver.ApiDELETE("/equipments/:id", deleteEquipment)
}

func listEquipments(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Equipment{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query equipments", err.Error())
	}

	var rows []domain.Equipment
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query equipments", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getEquipment(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment ID", nil)
	}
	var e domain.Equipment
	if err := GetDB(c).Where("id = ?", id).First(&e).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found", nil)
	}
	return ok(c, e)
}

func createEquipment(c echo.Context) error {
	var payload equipmentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse equipment", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	rate, msg := parseRate(payload.HourlyRate, 1)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	now := time.Now()
	e := domain.Equipment{
		ID:         common.UUIDint64(),
		Name:       payload.Name,
		HourlyRate: rate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := GetDB(c).Create(&e).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create equipment", err.Error())
	}
	return ok(c, e)
}

func updateEquipment(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment ID", nil)
	}
	var e domain.Equipment
	if err := GetDB(c).Where("id = ?", id).First(&e).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found", nil)
	}

	var payload equipmentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse equipment", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	rate, msg := parseRate(payload.HourlyRate, 1)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	e.Name = payload.Name
	e.HourlyRate = rate
	e.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&e).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update equipment", err.Error())
	}
	return ok(c, e)
}

func deleteEquipment(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment ID", nil)
	}
	if err := svc.DeleteCounterpart(c.Request().Context(), costing.AssocEquipment, id); err != nil {
		return failCosting(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
