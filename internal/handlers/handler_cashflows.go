package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
)

// cashflowHandler handles money-in/money-out entry requests.
type cashflowHandler struct {
	cashflowService portssvc.CashflowSvcFacade
}

// newCashflowHandler creates a new cashflowHandler.
func newCashflowHandler(cs portssvc.CashflowSvcFacade) *cashflowHandler {
	return &cashflowHandler{cashflowService: cs}
}

// registerCashflowRoutes sets up the cashflow routes.
func registerCashflowRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCashflowHandler(services.Cashflow)

	cashflows := rg.Group("/cashflows", middleware.RequireRoles(domain.RoleTrader), middleware.RequireSetupComplete())
	{
		cashflows.POST("", h.createCashflow)
		cashflows.GET("", h.listCashflows)
		cashflows.GET("/:cashflowID", h.getCashflow)
		cashflows.PATCH("/:cashflowID", h.updateCashflow)
		cashflows.DELETE("/:cashflowID", h.deleteCashflow)
		cashflows.GET("/:cashflowID/receipt", h.downloadReceipt)
	}
}

// createCashflow godoc
// @Summary Record a money-in or money-out entry
// @Description Costs 1 coin, debited atomically with the insert.
// @Tags cashflows
// @Accept json
// @Produce json
// @Param cashflow body dto.CreateCashflowRequest true "Entry details"
// @Success 201 {object} dto.CashflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Security BearerAuth
// @Router /cashflows [post]
func (h *cashflowHandler) createCashflow(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCashflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	cashflow, err := h.cashflowService.CreateCashflow(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create cashflow entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCashflowResponse(cashflow))
}

// listCashflows godoc
// @Summary List cashflow entries
// @Description Returns the caller's entries, optionally filtered by type
// @Description and date range. Admins see all users.
// @Tags cashflows
// @Produce json
// @Param type query string false "Filter by type" Enums(receipt, payment)
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListCashflowsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflows [get]
func (h *cashflowHandler) listCashflows(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ListCashflowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	cashflows, err := h.cashflowService.ListCashflows(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to list cashflow entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCashflowsResponse(cashflows))
}

// getCashflow godoc
// @Summary Get a cashflow entry by ID
// @Tags cashflows
// @Produce json
// @Param cashflowID path string true "Cashflow ID"
// @Success 200 {object} dto.CashflowResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflows/{cashflowID} [get]
func (h *cashflowHandler) getCashflow(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cashflow, err := h.cashflowService.GetCashflow(c.Request.Context(), actor, c.Param("cashflowID"))
	if err != nil {
		respondError(c, err, "Failed to fetch cashflow entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashflowResponse(cashflow))
}

// updateCashflow godoc
// @Summary Update a cashflow entry
// @Tags cashflows
// @Accept json
// @Produce json
// @Param cashflowID path string true "Cashflow ID"
// @Param update body dto.UpdateCashflowRequest true "Fields to update"
// @Success 200 {object} dto.CashflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflows/{cashflowID} [patch]
func (h *cashflowHandler) updateCashflow(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateCashflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	cashflow, err := h.cashflowService.UpdateCashflow(c.Request.Context(), actor, c.Param("cashflowID"), req)
	if err != nil {
		respondError(c, err, "Failed to update cashflow entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashflowResponse(cashflow))
}

// deleteCashflow godoc
// @Summary Delete a cashflow entry
// @Tags cashflows
// @Produce json
// @Param cashflowID path string true "Cashflow ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflows/{cashflowID} [delete]
func (h *cashflowHandler) deleteCashflow(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.cashflowService.DeleteCashflow(c.Request.Context(), actor, c.Param("cashflowID")); err != nil {
		respondError(c, err, "Failed to delete cashflow entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// downloadReceipt godoc
// @Summary Download a PDF receipt for a cashflow entry
// @Description Costs 1 coin. Responds with the rendered PDF.
// @Tags cashflows
// @Produce application/pdf
// @Param cashflowID path string true "Cashflow ID"
// @Success 200 {file} binary
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cashflows/{cashflowID}/receipt [get]
func (h *cashflowHandler) downloadReceipt(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pdf, filename, err := h.cashflowService.GenerateReceiptPDF(c.Request.Context(), actor, c.Param("cashflowID"))
	if err != nil {
		respondError(c, err, "Failed to generate receipt")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
