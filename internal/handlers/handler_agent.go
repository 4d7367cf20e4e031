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

// agentHandler handles the operations agents perform on behalf of traders.
type agentHandler struct {
	agentService portssvc.AgentSvcFacade
}

// newAgentHandler creates a new agentHandler.
func newAgentHandler(as portssvc.AgentSvcFacade) *agentHandler {
	return &agentHandler{agentService: as}
}

// registerAgentRoutes sets up the agent routes.
func registerAgentRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAgentHandler(services.Agent)

	agents := rg.Group("/agents", middleware.RequireRoles(domain.RoleAgent))
	{
		agents.POST("/traders", h.registerTrader)
		agents.POST("/coin-purchases", h.facilitatePurchase)
		agents.POST("/activities", h.logActivity)
		agents.GET("/activities", h.listActivities)
	}
}

// registerTrader godoc
// @Summary Register a trader on their behalf
// @Description Creates a trader account with the signup bonus and logs the
// @Description registration against the agent.
// @Tags agents
// @Accept json
// @Produce json
// @Param trader body dto.SignupRequest true "Trader details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email already taken"
// @Security BearerAuth
// @Router /agents/traders [post]
func (h *agentHandler) registerTrader(c *gin.Context) {
	agent, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	trader, err := h.agentService.RegisterTrader(c.Request.Context(), agent, req)
	if err != nil {
		respondError(c, err, "Failed to register trader")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(trader))
}

// facilitatePurchase godoc
// @Summary Facilitate a coin purchase for a trader
// @Description Credits the purchased package to the trader and logs the
// @Description facilitation against the agent.
// @Tags agents
// @Accept json
// @Produce json
// @Param purchase body dto.FacilitatePurchaseRequest true "Trader, package and payment method"
// @Success 201 {object} dto.CoinTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Trader not found"
// @Security BearerAuth
// @Router /agents/coin-purchases [post]
func (h *agentHandler) facilitatePurchase(c *gin.Context) {
	agent, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.FacilitatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.agentService.FacilitateCoinPurchase(c.Request.Context(), agent, req)
	if err != nil {
		respondError(c, err, "Failed to facilitate purchase")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCoinTransactionResponse(txn))
}

// logActivity godoc
// @Summary Log an assistance activity
// @Tags agents
// @Accept json
// @Produce json
// @Param activity body dto.LogAgentActivityRequest true "Activity details"
// @Success 201 {object} dto.AgentActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents/activities [post]
func (h *agentHandler) logActivity(c *gin.Context) {
	agent, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.LogAgentActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	activity, err := h.agentService.LogActivity(c.Request.Context(), agent, req)
	if err != nil {
		respondError(c, err, "Failed to log activity")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAgentActivityResponse(activity))
}

// listActivities godoc
// @Summary List the agent's own activity log
// @Tags agents
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.AgentActivityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /agents/activities [get]
func (h *agentHandler) listActivities(c *gin.Context) {
	agent, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	activities, err := h.agentService.ListActivities(c.Request.Context(), agent, limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgentActivityResponses(activities))
}
