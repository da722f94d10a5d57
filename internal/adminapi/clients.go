package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/internal/webserver"
	"github.com/craftline/workshop/pkg/common"
)

type clientPayload struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

func registerClientRoutes() {
	webserver.ApiGET("/clients", listClients)
	webserver.ApiGET("/clients/:id", getClient)
	webserver.ApiPOST("/clients", createClient)
	webserver.ApiPUT("/clients/:id", updateClient)
	webserver.ApiDELETE("/clients/:id", deleteClient)
}

func listClients(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Client{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query clients", err.Error())
	}

	var rows []domain.Client
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query clients", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getClient(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	var cl domain.Client
	if err := GetDB(c).Where("id = ?", id).First(&cl).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
	}
	return ok(c, cl)
}

func createClient(c echo.Context) error {
	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	payload.FullName = strings.TrimSpace(payload.FullName)
	if payload.FullName == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Full name is required", nil)
	}

	now := time.Now()
	cl := domain.Client{
		ID:          common.UUIDint64(),
		FullName:    payload.FullName,
		PhoneNumber: strings.TrimSpace(payload.PhoneNumber),
		Address:     strings.TrimSpace(payload.Address),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&cl).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create client", err.Error())
	}
	return ok(c, cl)
}

func updateClient(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	var cl domain.Client
	if err := GetDB(c).Where("id = ?", id).First(&cl).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
	}

	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	payload.FullName = strings.TrimSpace(payload.FullName)
	if payload.FullName == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Full name is required", nil)
	}

	cl.FullName = payload.FullName
	cl.PhoneNumber = strings.TrimSpace(payload.PhoneNumber)
	cl.Address = strings.TrimSpace(payload.Address)
	cl.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&cl).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update client", err.Error())
	}
	return ok(c, cl)
}

func deleteClient(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Client{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete client", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
