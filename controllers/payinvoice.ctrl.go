package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/responses"
	"github.com/lngateway/lngateway/lib/service"
)

// PayInvoiceController : Pay invoice controller struct
type PayInvoiceController struct {
	svc *service.GatewayService
}

func NewPayInvoiceController(svc *service.GatewayService) *PayInvoiceController {
	return &PayInvoiceController{svc: svc}
}

// PayInvoice : Pay invoice handler
func (controller *PayInvoiceController) PayInvoice(c echo.Context) error {
	type RequestBody struct {
		Bolt11 string `json:"bolt11" validate:"required"`
	}

	var body RequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	result, err := controller.svc.Node.PayInvoice(c.Request().Context(), body.Bolt11)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
