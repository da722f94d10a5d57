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

type employeePayload struct {
	FullName         string `json:"full_name"`
	PhoneNumber      string `json:"phone_number"`
	Role             string `json:"role"`
	LaborDescription string `json:"labor_description"`
	HourlyRate       string `json:"hourly_rate"`
	Address          string `json:"address"`
}

func registerEmployeeRoutes() {
	webserver.ApiGET("/employees", listEmployees)
	webserver.ApiGET("/employees/:id", getEmployee)
	webserver.ApiPOST("/employees", createEmployee)
	webserver.ApiPUT("/employees/:id", updateEmployee)
	webserver.ApiDELETE("/employees/:id", deleteEmployee)
}

func validateEmployeePayload(payload *employeePayload) (decimal.Decimal, string) {
	payload.FullName = strings.TrimSpace(payload.FullName)
	payload.PhoneNumber = strings.TrimSpace(payload.PhoneNumber)
	payload.LaborDescription = strings.TrimSpace(payload.LaborDescription)
	if payload.FullName == "" || payload.PhoneNumber == "" || payload.LaborDescription == "" {
		return decimal.Zero, "Full name, phone number and labor description are required"
	}
	if payload.Role != domain.EmployeeRoleWorker && payload.Role != domain.EmployeeRoleAdministrative {
		return decimal.Zero, "Role must be 'WORKER' or 'ADMINISTRATIVE'"
	}
	// hourly rates carry at most one decimal place
	if !costing.ValidatePrecision(payload.HourlyRate, 1) {
		return decimal.Zero, "Hourly rate must be a non-negative decimal with at most 1 decimal place"
	}
	rate, err := decimal.NewFromString(payload.HourlyRate)
	if err != nil {
		return decimal.Zero, "Hourly rate is not a valid decimal"
	}
	return rate, ""
}

func listEmployees(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Employee{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query employees", err.Error())
	}

	var rows []domain.Employee
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query employees", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getEmployee(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID", nil)
	}
	var e domain.Employee
	if err := GetDB(c).Where("id = ?", id).First(&e).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
	}
	return ok(c, e)
}

func createEmployee(c echo.Context) error {
	var payload employeePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse employee", err.Error())
	}
	rate, msg := validateEmployeePayload(&payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	now := time.Now()
	e := domain.Employee{
		ID:               common.UUIDint64(),
		FullName:         payload.FullName,
		PhoneNumber:      payload.PhoneNumber,
		Role:             payload.Role,
		LaborDescription: payload.LaborDescription,
		HourlyRate:       rate,
		Address:          strings.TrimSpace(payload.Address),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := GetDB(c).Create(&e).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create employee", err.Error())
	}
	return ok(c, e)
}

func updateEmployee(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID", nil)
	}
	var e domain.Employee
	if err := GetDB(c).Where("id = ?", id).First(&e).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
	}

	var payload employeePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse employee", err.Error())
	}
	rate, msg := validateEmployeePayload(&payload)
	if msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	e.FullName = payload.FullName
	e.PhoneNumber = payload.PhoneNumber
	e.Role = payload.Role
	e.LaborDescription = payload.LaborDescription
	e.HourlyRate = rate
	e.Address = strings.TrimSpace(payload.Address)
	e.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&e).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update employee", err.Error())
	}
	return ok(c, e)
}

func deleteEmployee(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID", nil)
	}
	// restricted while labor usage rows still reference the employee
	if err := svc.DeleteCounterpart(c.Request().Context(), costing.AssocLabor, id); err != nil {
		return failCosting(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
