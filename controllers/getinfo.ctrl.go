package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/service"
)

// GetInfoController : GetInfoController struct
type GetInfoController struct {
	svc *service.GatewayService
}

func NewGetInfoController(svc *service.GatewayService) *GetInfoController {
	return &GetInfoController{svc: svc}
}

// GetInfo : GetInfo handler
func (controller *GetInfoController) GetInfo(c echo.Context) error {
	info, err := controller.svc.Node.GetInfo(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}
