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

// adminHandler handles platform administration requests.
type adminHandler struct {
	adminService portssvc.AdminSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(as portssvc.AdminSvcFacade) *adminHandler {
	return &adminHandler{adminService: as}
}

// registerAdminRoutes sets up the admin routes.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.Admin)

	admin := rg.Group("/admin", middleware.RequireRoles())
	{
		admin.GET("/users", h.listUsers)
		admin.DELETE("/users/:userID", h.deleteUser)
		admin.POST("/coins/credit", h.creditCoins)
		admin.GET("/audit-logs", h.listAuditLogs)
		admin.GET("/feedback", h.listFeedback)
		admin.GET("/tool-usage", h.toolUsageStats)
	}
}

// listUsers godoc
// @Summary List users of any role
// @Tags admin
// @Produce json
// @Param role query string false "Filter by role" Enums(personal, trader, agent, admin)
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.adminService.ListUsers(c.Request.Context(), actor, domain.Role(params.Role), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// deleteUser godoc
// @Summary Delete a user and all of their data
// @Description Writes an audit log entry alongside the deletion.
// @Tags admin
// @Produce json
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{userID} [delete]
func (h *adminHandler) deleteUser(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), actor, c.Param("userID")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// creditCoins godoc
// @Summary Grant coins to a user
// @Description Credits coins outside the purchase flow and writes an audit
// @Description log entry.
// @Tags admin
// @Accept json
// @Produce json
// @Param credit body dto.AdminCreditRequest true "Recipient and amount"
// @Success 201 {object} dto.CoinTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Security BearerAuth
// @Router /admin/coins/credit [post]
func (h *adminHandler) creditCoins(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AdminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.adminService.CreditCoins(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to credit coins")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCoinTransactionResponse(txn))
}

// listAuditLogs godoc
// @Summary List audit trail entries
// @Tags admin
// @Produce json
// @Param userID query string false "Filter by acting admin"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.AuditLogResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/audit-logs [get]
func (h *adminHandler) listAuditLogs(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.adminService.ListAuditLogs(c.Request.Context(), actor, c.Query("userID"), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditLogResponses(logs))
}

// listFeedback godoc
// @Summary List submitted feedback
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.FeedbackResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/feedback [get]
func (h *adminHandler) listFeedback(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	feedback, err := h.adminService.ListFeedback(c.Request.Context(), actor, limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list feedback")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeedbackResponses(feedback))
}

// toolUsageStats godoc
// @Summary Get usage counts per tool
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/tool-usage [get]
func (h *adminHandler) toolUsageStats(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.adminService.ToolUsageStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to fetch tool usage")
		return
	}
	c.JSON(http.StatusOK, stats)
}
