package main

import (
	"github.com/labstack/echo/v4"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/handler"
	"github.com/ozgundoganbatuhan-lang/asansor/internal/middleware"
	"github.com/ozgundoganbatuhan-lang/asansor/prometheus"
)

func registerRoutes(e *echo.Echo) {
	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	auth := e.Group("/api/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout)

	sessionAuth := middleware.SessionAuthMiddleware(handler.JWT(), handler.CookieName())

	// The upgrade lead form must stay writable after trial expiry, so it
	// only carries session auth.
	lead := e.Group("/api", sessionAuth)
	lead.POST("/purchase-requests", handler.CreatePurchaseRequest)

	// Everything below requires a session; writes are gated on entitlements
	api := e.Group("/api", sessionAuth)
	api.Use(middleware.EntitlementMiddleware())

	api.GET("/me", handler.Me)
	api.GET("/entitlements", handler.GetEntitlements)

	api.GET("/org", handler.GetOrg)
	api.PATCH("/org", handler.UpdateOrg)

	api.GET("/customers", handler.ListCustomers)
	api.POST("/customers", handler.CreateCustomer)
	api.GET("/customers/:id", handler.GetCustomer)
	api.PATCH("/customers/:id", handler.UpdateCustomer)
	api.DELETE("/customers/:id", handler.DeleteCustomer)

	api.GET("/assets", handler.ListAssets)
	api.POST("/assets", handler.CreateAsset)
	api.GET("/assets/:id", handler.GetAsset)
	api.PATCH("/assets/:id", handler.UpdateAsset)
	api.DELETE("/assets/:id", handler.DeleteAsset)

	api.GET("/brands", handler.ListBrands)
	api.POST("/brands", handler.CreateBrand)

	api.GET("/devices", handler.ListDevices)
	api.POST("/devices", handler.CreateDevice)
	api.GET("/devices/:id", handler.GetDevice)
	api.PATCH("/devices/:id", handler.UpdateDevice)

	api.GET("/technicians", handler.ListTechnicians)
	api.POST("/technicians", handler.CreateTechnician)

	api.GET("/work-orders", handler.ListWorkOrders)
	api.POST("/work-orders", handler.CreateWorkOrder)
	api.GET("/work-orders/:id", handler.GetWorkOrder)
	api.PATCH("/work-orders/:id", handler.UpdateWorkOrder)
	api.DELETE("/work-orders/:id", handler.DeleteWorkOrder)
	api.POST("/work-orders/:id/parts", handler.AddWorkOrderPart)
	api.DELETE("/work-orders/:id/parts/:usageId", handler.RemoveWorkOrderPart)

	api.GET("/service-calls", handler.ListServiceCalls)
	api.POST("/service-calls", handler.CreateServiceCall)
	api.GET("/service-calls/:id", handler.GetServiceCall)
	api.PATCH("/service-calls/:id", handler.UpdateServiceCall)
	api.POST("/service-calls/:id/parts", handler.AddServiceCallPart)
	api.DELETE("/service-calls/:id/parts/:usageId", handler.RemoveServiceCallPart)

	api.GET("/maintenance-plans", handler.ListMaintenancePlans)
	api.POST("/maintenance-plans", handler.CreateMaintenancePlan)
	api.PATCH("/maintenance-plans/:id", handler.UpdateMaintenancePlan)
	api.DELETE("/maintenance-plans/:id", handler.DeleteMaintenancePlan)

	api.GET("/contracts", handler.ListContracts)
	api.POST("/contracts", handler.CreateContract)
	api.GET("/contracts/:id", handler.GetContract)
	api.PATCH("/contracts/:id", handler.UpdateContract)

	api.GET("/inspections", handler.ListInspections)
	api.POST("/inspections", handler.CreateInspection)

	api.GET("/invoices", handler.ListInvoices)
	api.POST("/invoices", handler.CreateInvoice)
	api.GET("/invoices/:id", handler.GetInvoice)
	api.PATCH("/invoices/:id", handler.UpdateInvoice)
	api.GET("/invoices/:id/pdf", handler.PrintInvoice)

	api.GET("/service-invoices", handler.ListServiceInvoices)
	api.POST("/service-invoices", handler.CreateServiceInvoice)
	api.GET("/service-invoices/:id", handler.GetServiceInvoice)
	api.PATCH("/service-invoices/:id", handler.UpdateServiceInvoice)

	api.GET("/parts", handler.ListParts)
	api.POST("/parts", handler.CreatePart)
	api.PATCH("/parts/:id", handler.UpdatePart)

	api.POST("/sms", handler.SendSMS)

	api.GET("/dashboard", handler.GetDashboard)
	api.GET("/reports/work-orders.csv", handler.ExportWorkOrders)
}
