package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/responses"
	"github.com/lngateway/lngateway/lib/service"
)

// AddInvoiceController : Add invoice controller struct
type AddInvoiceController struct {
	svc *service.GatewayService
}

func NewAddInvoiceController(svc *service.GatewayService) *AddInvoiceController {
	return &AddInvoiceController{svc: svc}
}

// AddInvoice : Add invoice handler
func (controller *AddInvoiceController) AddInvoice(c echo.Context) error {
	type RequestBody struct {
		Msat uint64 `json:"msat" validate:"required"`
		Desc string `json:"desc"`
	}

	var body RequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	bolt11, err := controller.svc.Node.CreateInvoice(c.Request().Context(), body.Msat, "", body.Desc)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"bolt11": bolt11})
}
