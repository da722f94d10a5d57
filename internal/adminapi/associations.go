package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftline/workshop/internal/costing"
	"github.com/craftline/workshop/internal/webserver"
)

type usagePayload struct {
	ProductID     int64 `json:"product_id,string"`
	CounterpartID int64 `json:"counterpart_id,string"`
	Amount        int   `json:"amount"`
}

// registerAssociationRoutes exposes the association store operations.
// These routes are the only way association rows may be mutated; every
// successful call has already recomputed the owning product's cost when
// it returns.
func registerAssociationRoutes() {
	webserver.ApiPOST("/products/labor", createLaborUsage)
	webserver.ApiPUT("/products/labor/:id", updateLaborUsage)
	webserver.ApiDELETE("/products/labor/:id", deleteLaborUsage)

	webserver.ApiPOST("/products/equipment", createEquipmentUsage)
	webserver.ApiPUT("/products/equipment/:id", updateEquipmentUsage)
	webserver.ApiDELETE("/products/equipment/:id", deleteEquipmentUsage)

	webserver.ApiPOST("/products/materials", createMaterialUsage)
	webserver.ApiPUT("/products/materials/:id", updateMaterialUsage)
	webserver.ApiDELETE("/products/materials/:id", deleteMaterialUsage)
}

func createUsage(c echo.Context, kind costing.AssocKind) error {
	var payload usagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse association", err.Error())
	}
	id, err := svc.Create(c.Request().Context(), kind, payload.ProductID, payload.CounterpartID, payload.Amount)
	if err != nil {
		return failCosting(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func updateUsage(c echo.Context, kind costing.AssocKind) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid association ID", nil)
	}
	var payload usagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse association", err.Error())
	}
	if err := svc.UpdateAmount(c.Request().Context(), kind, id, payload.Amount); err != nil {
		return failCosting(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func deleteUsage(c echo.Context, kind costing.AssocKind) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid association ID", nil)
	}
	if err := svc.Delete(c.Request().Context(), kind, id); err != nil {
		return failCosting(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func createLaborUsage(c echo.Context) error { return createUsage(c, costing.AssocLabor) }
func updateLaborUsage(c echo.Context) error { return updateUsage(c, costing.AssocLabor) }
func deleteLaborUsage(c echo.Context) error { return deleteUsage(c, costing.AssocLabor) }

func createEquipmentUsage(c echo.Context) error { return createUsage(c, costing.AssocEquipment) }
func updateEquipmentUsage(c echo.Context) error { return updateUsage(c, costing.AssocEquipment) }
func deleteEquipmentUsage(c echo.Context) error { return deleteUsage(c, costing.AssocEquipment) }

func createMaterialUsage(c echo.Context) error { return createUsage(c, costing.AssocMaterial) }
func updateMaterialUsage(c echo.Context) error { return updateUsage(c, costing.AssocMaterial) }
func deleteMaterialUsage(c echo.Context) error { return deleteUsage(c, costing.AssocMaterial) }
