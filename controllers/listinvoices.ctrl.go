package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/service"
)

// ListInvoicesController : ListInvoicesController struct
type ListInvoicesController struct {
	svc *service.GatewayService
}

func NewListInvoicesController(svc *service.GatewayService) *ListInvoicesController {
	return &ListInvoicesController{svc: svc}
}

// ListInvoices : List invoices handler. Ordering is backend-native.
func (controller *ListInvoicesController) ListInvoices(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	invoices, err := controller.svc.Node.ListInvoices(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}
