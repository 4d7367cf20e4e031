package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
)

// sessionHeader identifies anonymous personal-tool sessions.
const sessionHeader = "X-Session-ID"

// personalOwner resolves the caller of a personal-finance tool: the
// authenticated user when a valid token was sent, otherwise the anonymous
// session from the X-Session-ID header.
func personalOwner(c *gin.Context) (portssvc.PersonalOwner, bool) {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return portssvc.PersonalOwner{UserID: userID}, true
	}
	if sessionID := c.GetHeader(sessionHeader); sessionID != "" {
		return portssvc.PersonalOwner{SessionID: sessionID}, true
	}
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication or an X-Session-ID header is required"})
	return portssvc.PersonalOwner{}, false
}

// historyLimit parses the limit query parameter for history endpoints.
func historyLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return limit
}

// personalHandler handles the budget calculator and bill planner. Both work
// for authenticated users and anonymous sessions.
type personalHandler struct {
	budgetService portssvc.BudgetSvcFacade
	billService   portssvc.BillSvcFacade
}

// newPersonalHandler creates a new personalHandler.
func newPersonalHandler(bs portssvc.BudgetSvcFacade, bills portssvc.BillSvcFacade) *personalHandler {
	return &personalHandler{budgetService: bs, billService: bills}
}

// registerPersonalRoutes sets up the budget and bill routes on the
// optionally-authenticated personal group.
func registerPersonalRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPersonalHandler(services.Budget, services.Bill)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.calculateBudget)
		budgets.GET("", h.budgetHistory)
		budgets.DELETE("/:budgetID", h.deleteBudget)
	}

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.PATCH("/:billID", h.updateBill)
		bills.DELETE("/:billID", h.deleteBill)
	}
}

// calculateBudget godoc
// @Summary Calculate and save a budget
// @Description Computes fixed expenses and the surplus/deficit against the
// @Description savings goal. Works without an account via X-Session-ID.
// @Tags personal
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param budget body dto.BudgetRequest true "Income, expenses and savings goal"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Router /personal/budgets [post]
func (h *personalHandler) calculateBudget(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.budgetService.CalculateBudget(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "Failed to calculate budget")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// budgetHistory godoc
// @Summary List saved budgets
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} domain.Budget
// @Router /personal/budgets [get]
func (h *personalHandler) budgetHistory(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	budgets, err := h.budgetService.BudgetHistory(c.Request.Context(), owner, historyLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list budgets")
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// deleteBudget godoc
// @Summary Delete a saved budget
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param budgetID path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /personal/budgets/{budgetID} [delete]
func (h *personalHandler) deleteBudget(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), owner, c.Param("budgetID")); err != nil {
		respondError(c, err, "Failed to delete budget")
		return
	}
	c.Status(http.StatusNoContent)
}

// createBill godoc
// @Summary Add a bill
// @Tags personal
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse
// @Router /personal/bills [post]
func (h *personalHandler) createBill(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills ordered by due date
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param status query string false "Filter by status" Enums(unpaid, paid, pending, overdue)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} dto.BillResponse
// @Router /personal/bills [get]
func (h *personalHandler) listBills(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), owner, domain.BillStatus(c.Query("status")), historyLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponses(bills))
}

// updateBill godoc
// @Summary Update a bill
// @Description Marking a recurring bill paid advances its due date by one
// @Description period and resets it to unpaid.
// @Tags personal
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param billID path string true "Bill ID"
// @Param update body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /personal/bills/{billID} [patch]
func (h *personalHandler) updateBill(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), owner, c.Param("billID"), req)
	if err != nil {
		respondError(c, err, "Failed to update bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// deleteBill godoc
// @Summary Delete a bill
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param billID path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /personal/bills/{billID} [delete]
func (h *personalHandler) deleteBill(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), owner, c.Param("billID")); err != nil {
		respondError(c, err, "Failed to delete bill")
		return
	}
	c.Status(http.StatusNoContent)
}
