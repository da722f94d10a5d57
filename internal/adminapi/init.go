package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftline/workshop/internal/app"
	"github.com/craftline/workshop/internal/costing"
)

var (
	svc       *costing.AssociationService
	jwtSecret string
)

// Init wires the handlers against the application context and registers all
// admin API routes.
func Init(appc app.AppContext) {
	svc = appc.Costing()
	jwtSecret = appc.Config().Web.Secret

	registerAuthRoutes()
	registerProductRoutes()
	registerEmployeeRoutes()
	registerEquipmentRoutes()
	registerMaterialRoutes()
	registerClientRoutes()
	registerSaleRoutes()
	registerAssociationRoutes()
}

// failCosting maps core error kinds onto HTTP responses.
func failCosting(c echo.Context, err error) error {
	switch {
	case costing.IsNotFound(err):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case costing.IsDuplicate(err):
		return fail(c, http.StatusBadRequest, "DUPLICATE_ASSOCIATION", err.Error(), nil)
	case errors.Is(err, costing.ErrInvalidAmount):
		return fail(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error(), nil)
	case errors.Is(err, costing.ErrInvalidPrecision):
		return fail(c, http.StatusBadRequest, "INVALID_PRECISION", err.Error(), nil)
	case errors.Is(err, costing.ErrInvalidScope):
		return fail(c, http.StatusBadRequest, "INVALID_SCOPE", err.Error(), nil)
	case errors.Is(err, costing.ErrCounterpartInUse):
		return fail(c, http.StatusConflict, "IN_USE", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Operation failed", err.Error())
	}
}
