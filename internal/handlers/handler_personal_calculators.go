package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// calculatorHandler handles the net worth, emergency fund, financial health
// and personality quiz tools.
type calculatorHandler struct {
	netWorthService      portssvc.NetWorthSvcFacade
	emergencyFundService portssvc.EmergencyFundSvcFacade
	healthService        portssvc.FinancialHealthSvcFacade
	quizService          portssvc.QuizSvcFacade
}

// newCalculatorHandler creates a new calculatorHandler.
func newCalculatorHandler(nw portssvc.NetWorthSvcFacade, ef portssvc.EmergencyFundSvcFacade, fh portssvc.FinancialHealthSvcFacade, qz portssvc.QuizSvcFacade) *calculatorHandler {
	return &calculatorHandler{
		netWorthService:      nw,
		emergencyFundService: ef,
		healthService:        fh,
		quizService:          qz,
	}
}

// registerCalculatorRoutes sets up the calculator routes on the
// optionally-authenticated personal group.
func registerCalculatorRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCalculatorHandler(services.NetWorth, services.EmergencyFund, services.FinancialHealth, services.Quiz)

	netWorth := rg.Group("/net-worth")
	{
		netWorth.POST("", h.calculateNetWorth)
		netWorth.GET("", h.netWorthHistory)
	}

	fund := rg.Group("/emergency-fund")
	{
		fund.POST("", h.planEmergencyFund)
		fund.GET("", h.fundHistory)
	}

	health := rg.Group("/financial-health")
	{
		health.POST("", h.scoreFinancialHealth)
		health.GET("", h.scoreHistory)
	}

	quiz := rg.Group("/quiz")
	{
		quiz.POST("", h.submitQuiz)
		quiz.GET("", h.quizHistory)
	}
}

// calculateNetWorth godoc
// @Summary Calculate and save a net worth snapshot
// @Description Sums assets against liabilities and awards badges. Works
// @Description without an account via X-Session-ID.
// @Tags personal
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param snapshot body dto.NetWorthRequest true "Assets and liabilities"
// @Success 201 {object} dto.NetWorthResponse
// @Failure 400 {object} ErrorResponse
// @Router /personal/net-worth [post]
func (h *calculatorHandler) calculateNetWorth(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.NetWorthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.netWorthService.CalculateNetWorth(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "Failed to calculate net worth")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// netWorthHistory godoc
// @Summary List saved net worth snapshots
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} domain.NetWorthRecord
// @Router /personal/net-worth [get]
func (h *calculatorHandler) netWorthHistory(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	records, err := h.netWorthService.NetWorthHistory(c.Request.Context(), owner, historyLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list net worth history")
		return
	}
	c.JSON(http.StatusOK, records)
}

// planEmergencyFund godoc
// @Summary Plan and save an emergency fund
// @Description Recommends a months-of-expenses target from risk tolerance
// @Description and dependents, with the monthly savings needed to reach it.
// @Tags personal
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param plan body dto.EmergencyFundRequest true "Expenses, savings and timeline"
// @Success 201 {object} dto.EmergencyFundResponse
// @Failure 400 {object} ErrorResponse
// @Router /personal/emergency-fund [post]
func (h *calculatorHandler) planEmergencyFund(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.EmergencyFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.emergencyFundService.PlanEmergencyFund(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "Failed to plan emergency fund")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// fundHistory godoc
// @Summary List saved emergency fund plans
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} domain.EmergencyFund
// @Router /personal/emergency-fund [get]
func (h *calculatorHandler) fundHistory(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	funds, err := h.emergencyFundService.FundHistory(c.Request.Context(), owner, historyLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list emergency fund history")
		return
	}
	c.JSON(http.StatusOK, funds)
}

// scoreFinancialHealth godoc
// @Summary Score and save a financial health submission
// @Description Scores debt-to-income, savings rate and interest burden into
// @Description a 0-100 score with a status band and comparative rank.
// @Tags personal
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param submission body dto.HealthScoreRequest true "Income, expenses, debt and interest"
// @Success 201 {object} dto.HealthScoreResponse
// @Failure 400 {object} ErrorResponse
// @Router /personal/financial-health [post]
func (h *calculatorHandler) scoreFinancialHealth(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.HealthScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.healthService.ScoreFinancialHealth(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "Failed to score financial health")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// scoreHistory godoc
// @Summary List saved financial health scores
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} domain.FinancialHealthScore
// @Router /personal/financial-health [get]
func (h *calculatorHandler) scoreHistory(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	scores, err := h.healthService.ScoreHistory(c.Request.Context(), owner, historyLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list financial health history")
		return
	}
	c.JSON(http.StatusOK, scores)
}

// submitQuiz godoc
// @Summary Submit the financial personality quiz
// @Description Scores exactly ten yes/no answers into a personality band
// @Description with earned badges.
// @Tags personal
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param quiz body dto.QuizRequest true "Ten yes/no answers"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} ErrorResponse
// @Router /personal/quiz [post]
func (h *calculatorHandler) submitQuiz(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.quizService.SubmitQuiz(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "Failed to submit quiz")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// quizHistory godoc
// @Summary List past quiz results
// @Tags personal
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} domain.QuizResult
// @Router /personal/quiz [get]
func (h *calculatorHandler) quizHistory(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	results, err := h.quizService.QuizHistory(c.Request.Context(), owner, historyLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list quiz history")
		return
	}
	c.JSON(http.StatusOK, results)
}
