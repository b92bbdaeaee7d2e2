package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/service"
)

// BalanceController : BalanceController struct
type BalanceController struct {
	svc *service.GatewayService
}

func NewBalanceController(svc *service.GatewayService) *BalanceController {
	return &BalanceController{svc: svc}
}

// Balance : Balance handler
func (controller *BalanceController) Balance(c echo.Context) error {
	balance, err := controller.svc.Node.GetBalance(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balance)
}
