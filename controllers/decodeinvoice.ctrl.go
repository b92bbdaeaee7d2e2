package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/responses"
	"github.com/lngateway/lngateway/lib/service"
)

// DecodeInvoiceController : DecodeInvoiceController struct
type DecodeInvoiceController struct {
	svc *service.GatewayService
}

func NewDecodeInvoiceController(svc *service.GatewayService) *DecodeInvoiceController {
	return &DecodeInvoiceController{svc: svc}
}

// DecodeInvoice : Decode invoice handler
func (controller *DecodeInvoiceController) DecodeInvoice(c echo.Context) error {
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

	decoded, err := controller.svc.Node.DecodeInvoice(c.Request().Context(), body.Bolt11)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, decoded)
}
