package main

import (
	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/controllers"
	"github.com/lngateway/lngateway/lib/middlewares"
	"github.com/lngateway/lngateway/lib/service"
)

// RegisterEndpoints wires the HTTP surface. Login and logout are open; the
// /api group is session-gated and every handler there goes through the
// shared node handle.
func RegisterEndpoints(e *echo.Echo, svc *service.GatewayService) {
	authCtrl := controllers.NewAuthController(svc)
	e.POST("/login", authCtrl.Login)
	e.DELETE("/logout", authCtrl.Logout)

	api := e.Group("/api", middlewares.Session(svc))
	api.GET("/info", controllers.NewGetInfoController(svc).GetInfo)
	api.POST("/invoice", controllers.NewAddInvoiceController(svc).AddInvoice)
	api.GET("/balance", controllers.NewBalanceController(svc).Balance)
	api.GET("/invoices", controllers.NewListInvoicesController(svc).ListInvoices)
	api.POST("/decode", controllers.NewDecodeInvoiceController(svc).DecodeInvoice)
	api.POST("/pay", controllers.NewPayInvoiceController(svc).PayInvoice)
}
