package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/middleware"
)

// dashboardHandler handles the role-specific landing page summaries.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

// newDashboardHandler creates a new dashboardHandler.
func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes sets up the dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newDashboardHandler(services.Dashboard)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", middleware.RequireSetupComplete(), h.overview)
		dashboard.GET("/agent", middleware.RequireRoles(domain.RoleAgent), h.agentOverview)
		dashboard.GET("/admin", middleware.RequireRoles(), h.adminOverview)
	}
}

// overview godoc
// @Summary Get the personal/trader dashboard
// @Description Aggregates balances, outstanding debts, net cashflow, recent
// @Description activity and low-stock alerts for the current user.
// @Tags dashboard
// @Produce json
// @Param user_id query string false "View another user's dashboard (admin only)"
// @Success 200 {object} dto.DashboardOverview
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) overview(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), actor, c.Query("user_id"))
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// agentOverview godoc
// @Summary Get the agent dashboard
// @Description Aggregates registered traders, facilitated tokens and recent
// @Description activity for the current agent.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.AgentDashboard
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/agent [get]
func (h *dashboardHandler) agentOverview(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	overview, err := h.dashboardService.AgentOverview(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to build agent dashboard")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// adminOverview godoc
// @Summary Get the platform-wide admin dashboard
// @Description Aggregates user counts, tool usage, recent coin activity,
// @Description audit log entries and feedback. Admin only.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.AdminDashboard
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/admin [get]
func (h *dashboardHandler) adminOverview(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	overview, err := h.dashboardService.AdminOverview(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to build admin dashboard")
		return
	}
	c.JSON(http.StatusOK, overview)
}
