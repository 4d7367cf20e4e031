package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// feedbackHandler handles tool ratings and usage tracking.
type feedbackHandler struct {
	feedbackService portssvc.FeedbackSvcFacade
}

// newFeedbackHandler creates a new feedbackHandler.
func newFeedbackHandler(fs portssvc.FeedbackSvcFacade) *feedbackHandler {
	return &feedbackHandler{feedbackService: fs}
}

// registerFeedbackRoutes sets up the feedback routes on the
// optionally-authenticated personal group.
func registerFeedbackRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newFeedbackHandler(services.Feedback)

	rg.POST("/feedback", h.submitFeedback)
}

// submitFeedback godoc
// @Summary Rate a tool
// @Description Stores a 1-5 star rating with an optional comment. Works
// @Description without an account via X-Session-ID.
// @Tags feedback
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param feedback body dto.FeedbackRequest true "Tool, rating and comment"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} ErrorResponse
// @Router /personal/feedback [post]
func (h *feedbackHandler) submitFeedback(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err, "Failed to submit feedback")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFeedbackResponse(feedback))
}
