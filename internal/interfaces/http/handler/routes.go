package handler

import (
	"github.com/printshop/backend/internal/interfaces/http/router"
)

// ImpressionRoutes creates the route group for print job endpoints
func ImpressionRoutes(h *ImpressionHandler) *router.DomainGroup {
	group := router.NewDomainGroup("impresiones", "/impresiones")

	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)

	return group
}

// ExpenseRoutes creates the route group for expense endpoints
func ExpenseRoutes(h *ExpenseHandler) *router.DomainGroup {
	group := router.NewDomainGroup("gastos", "/gastos")

	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)

	return group
}

// ReportRoutes creates the route group for dashboard and report endpoints
func ReportRoutes(h *ReportHandler) *router.DomainGroup {
	group := router.NewDomainGroup("informes", "/informes")

	group.GET("/dashboard", h.Dashboard)
	group.GET("/resumen", h.Resumen)

	group.GET("/gastos", h.Gastos)
	group.GET("/gastos/pdf", h.GastosPDF)
	group.GET("/impresiones", h.Impresiones)
	group.GET("/impresiones/pdf", h.ImpresionesPDF)
	group.GET("/general", h.General)
	group.GET("/general/pdf", h.GeneralPDF)

	return group
}

// SystemRoutes creates the route group for health endpoints
func SystemRoutes(h *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "/system")

	group.GET("/health", h.Health)

	return group
}
