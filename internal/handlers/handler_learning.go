package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
	"github.com/fipithx/ficore_backend/internal/platform/config"
)

// learningHandler handles the learning hub: course browsing, lesson
// completion and admin content uploads.
type learningHandler struct {
	learningService portssvc.LearningSvcFacade
}

// newLearningHandler creates a new learningHandler.
func newLearningHandler(ls portssvc.LearningSvcFacade) *learningHandler {
	return &learningHandler{learningService: ls}
}

// registerLearningRoutes sets up the learning hub routes on the
// optionally-authenticated personal group. The upload route additionally
// requires an authenticated admin.
func registerLearningRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newLearningHandler(services.Learning)

	courses := rg.Group("/courses")
	{
		courses.GET("", h.listCourses)
		courses.GET("/:courseID", h.getCourse)
		courses.GET("/:courseID/lessons/:lessonID", h.getLesson)
		courses.POST("/:courseID/lessons/:lessonID/complete", h.completeLesson)
		courses.POST("/:courseID/lessons",
			middleware.AuthMiddleware(cfg.JWTSecret),
			middleware.LoadUserMiddleware(services.User),
			middleware.RequireRoles(),
			h.uploadLesson)
	}
}

// listCourses godoc
// @Summary List courses with progress
// @Description Lists active courses. When a user or session is identified,
// @Description each course carries their completion percentage.
// @Tags learning
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Success 200 {array} dto.CourseWithProgress
// @Router /personal/courses [get]
func (h *learningHandler) listCourses(c *gin.Context) {
	var owner portssvc.PersonalOwner
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		owner.UserID = userID
	} else {
		owner.SessionID = c.GetHeader(sessionHeader)
	}

	courses, err := h.learningService.ListCourses(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err, "Failed to list courses")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// getCourse godoc
// @Summary Get a course with its lesson list
// @Tags learning
// @Produce json
// @Param courseID path string true "Course ID"
// @Success 200 {object} dto.CourseDetail
// @Failure 404 {object} ErrorResponse
// @Router /personal/courses/{courseID} [get]
func (h *learningHandler) getCourse(c *gin.Context) {
	course, err := h.learningService.GetCourse(c.Request.Context(), c.Param("courseID"))
	if err != nil {
		respondError(c, err, "Failed to fetch course")
		return
	}
	c.JSON(http.StatusOK, course)
}

// getLesson godoc
// @Summary Get a lesson's content
// @Tags learning
// @Produce json
// @Param courseID path string true "Course ID"
// @Param lessonID path string true "Lesson ID"
// @Success 200 {object} dto.LessonResponse
// @Failure 404 {object} ErrorResponse
// @Router /personal/courses/{courseID}/lessons/{lessonID} [get]
func (h *learningHandler) getLesson(c *gin.Context) {
	lesson, err := h.learningService.GetLesson(c.Request.Context(), c.Param("courseID"), c.Param("lessonID"))
	if err != nil {
		respondError(c, err, "Failed to fetch lesson")
		return
	}
	c.JSON(http.StatusOK, dto.ToLessonResponse(lesson))
}

// completeLesson godoc
// @Summary Mark a lesson complete
// @Description Records completion and advances the owner's current lesson.
// @Tags learning
// @Produce json
// @Param X-Session-ID header string false "Anonymous session ID"
// @Param courseID path string true "Course ID"
// @Param lessonID path string true "Lesson ID"
// @Success 200 {object} dto.ProgressResponse
// @Failure 404 {object} ErrorResponse
// @Router /personal/courses/{courseID}/lessons/{lessonID}/complete [post]
func (h *learningHandler) completeLesson(c *gin.Context) {
	owner, ok := personalOwner(c)
	if !ok {
		return
	}

	progress, err := h.learningService.CompleteLesson(c.Request.Context(), owner, c.Param("courseID"), c.Param("lessonID"))
	if err != nil {
		respondError(c, err, "Failed to record progress")
		return
	}
	c.JSON(http.StatusOK, dto.ToProgressResponse(progress))
}

// uploadLesson godoc
// @Summary Upload lesson content
// @Description Admin only. Content is validated against the lesson content
// @Description schema before it is stored.
// @Tags learning
// @Accept json
// @Produce json
// @Param courseID path string true "Course ID"
// @Param lesson body dto.UploadLessonRequest true "Lesson title, position and content"
// @Success 201 {object} dto.LessonResponse
// @Failure 400 {object} ErrorResponse "Content fails schema validation"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /personal/courses/{courseID}/lessons [post]
func (h *learningHandler) uploadLesson(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UploadLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lesson, err := h.learningService.UploadLesson(c.Request.Context(), actor, c.Param("courseID"), req)
	if err != nil {
		respondError(c, err, "Failed to upload lesson")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLessonResponse(lesson))
}
