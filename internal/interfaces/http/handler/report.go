package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/application/report"
)

// ReportHandler handles report and dashboard API endpoints
type ReportHandler struct {
	BaseHandler
	reports   *report.Service
	dashboard *report.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *report.Service, dashboard *report.DashboardService) *ReportHandler {
	return &ReportHandler{reports: reports, dashboard: dashboard}
}

// Dashboard returns the 12-month series and accumulated totals
func (h *ReportHandler) Dashboard(c *gin.Context) {
	data, err := h.dashboard.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}

// Resumen returns the one-month summary block
func (h *ReportHandler) Resumen(c *gin.Context) {
	data, err := h.dashboard.Resumen(c.Request.Context(), c.Query("month"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}

// Gastos returns the expense report payload
func (h *ReportHandler) Gastos(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	data, err := h.reports.Gastos(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}

// Impresiones returns the impression report payload
func (h *ReportHandler) Impresiones(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	data, err := h.reports.Impresiones(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}

// General returns the combined income and expense report payload
func (h *ReportHandler) General(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	data, err := h.reports.General(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}

// GastosPDF streams the expense report as a PDF attachment
func (h *ReportHandler) GastosPDF(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	filename, content, err := h.reports.ExportGastosPDF(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendPDF(c, filename, content)
}

// ImpresionesPDF streams the impression report as a PDF attachment
func (h *ReportHandler) ImpresionesPDF(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	filename, content, err := h.reports.ExportImpresionesPDF(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendPDF(c, filename, content)
}

// GeneralPDF streams the combined report as a PDF attachment
func (h *ReportHandler) GeneralPDF(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	filename, content, err := h.reports.ExportGeneralPDF(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendPDF(c, filename, content)
}

func (h *ReportHandler) bindRequest(c *gin.Context) (report.Request, bool) {
	var req report.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return report.Request{}, false
	}
	return req, true
}

func (h *ReportHandler) sendPDF(c *gin.Context, filename string, content []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", content)
}
