package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
)

// reportHandler handles business report generation. Reports are returned as
// JSON by default; format=csv or format=pdf downloads the rendered file.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes sets up the report routes.
func registerReportRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReportHandler(services.Report)

	reports := rg.Group("/reports", middleware.RequireRoles(domain.RoleTrader), middleware.RequireSetupComplete())
	{
		reports.GET("/profit-loss", h.profitLoss)
		reports.GET("/debt-summary", h.debtSummary)
		reports.GET("/inventory", h.inventory)
	}
}

// reportFormat parses the format query parameter. Empty means JSON.
func reportFormat(c *gin.Context) (portssvc.ReportFormat, bool) {
	switch c.DefaultQuery("format", "json") {
	case "json":
		return portssvc.ReportFormatJSON, true
	case "csv":
		return portssvc.ReportFormatCSV, true
	case "pdf":
		return portssvc.ReportFormatPDF, true
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported format: use json, csv or pdf"})
		return "", false
	}
}

// sendExport writes a generated CSV or PDF export as an attachment.
func sendExport(c *gin.Context, format portssvc.ReportFormat, data []byte, filename string) {
	contentType := "text/csv"
	if format == portssvc.ReportFormatPDF {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// profitLoss godoc
// @Summary Generate a profit/loss report
// @Description Summarises receipts against payments over a period. Costs
// @Description 2 coins regardless of format.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param format query string false "Output format" Enums(json, csv, pdf) default(json)
// @Success 200 {object} dto.ProfitLossReport
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Security BearerAuth
// @Router /reports/profit-loss [get]
func (h *reportHandler) profitLoss(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ReportPeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	format, ok := reportFormat(c)
	if !ok {
		return
	}

	if format == portssvc.ReportFormatJSON {
		report, err := h.reportService.ProfitLoss(c.Request.Context(), actor, req)
		if err != nil {
			respondError(c, err, "Failed to generate report")
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	data, filename, err := h.reportService.ProfitLossExport(c.Request.Context(), actor, req, format)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}
	sendExport(c, format, data, filename)
}

// debtSummary godoc
// @Summary Generate a debt summary report
// @Description Summarises outstanding debtor and creditor amounts. Costs
// @Description 2 coins regardless of format.
// @Tags reports
// @Produce json
// @Param format query string false "Output format" Enums(json, csv, pdf) default(json)
// @Success 200 {object} dto.DebtSummaryReport
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Security BearerAuth
// @Router /reports/debt-summary [get]
func (h *reportHandler) debtSummary(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	format, ok := reportFormat(c)
	if !ok {
		return
	}

	if format == portssvc.ReportFormatJSON {
		report, err := h.reportService.DebtSummary(c.Request.Context(), actor)
		if err != nil {
			respondError(c, err, "Failed to generate report")
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	data, filename, err := h.reportService.DebtSummaryExport(c.Request.Context(), actor, format)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}
	sendExport(c, format, data, filename)
}

// inventory godoc
// @Summary Generate an inventory valuation report
// @Description Summarises stock levels and valuation. Costs 2 coins
// @Description regardless of format.
// @Tags reports
// @Produce json
// @Param format query string false "Output format" Enums(json, csv, pdf) default(json)
// @Success 200 {object} dto.InventoryReport
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Security BearerAuth
// @Router /reports/inventory [get]
func (h *reportHandler) inventory(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	format, ok := reportFormat(c)
	if !ok {
		return
	}

	if format == portssvc.ReportFormatJSON {
		report, err := h.reportService.InventoryReport(c.Request.Context(), actor)
		if err != nil {
			respondError(c, err, "Failed to generate report")
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	data, filename, err := h.reportService.InventoryExport(c.Request.Context(), actor, format)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}
	sendExport(c, format, data, filename)
}
