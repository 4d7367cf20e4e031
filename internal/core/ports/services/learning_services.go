package services

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// LearningSvcFacade defines the learning hub service surface
type LearningSvcFacade interface {
	// ListCourses lists active courses with the owner's progress attached.
	ListCourses(ctx context.Context, owner PersonalOwner) ([]dto.CourseWithProgress, error)

	// GetCourse retrieves one course with its lessons.
	GetCourse(ctx context.Context, courseID string) (*dto.CourseDetail, error)

	// GetLesson retrieves one lesson's content.
	GetLesson(ctx context.Context, courseID, lessonID string) (*domain.Lesson, error)

	// CompleteLesson marks a lesson done and updates course progress.
	CompleteLesson(ctx context.Context, owner PersonalOwner, courseID, lessonID string) (*domain.LearningProgress, error)

	// UploadLesson validates and stores lesson content. Admin only.
	UploadLesson(ctx context.Context, actor *domain.User, courseID string, req dto.UploadLessonRequest) (*domain.Lesson, error)

	// SeedCourses loads the built-in course catalogue into storage.
	// Existing courses with the same IDs are replaced.
	SeedCourses(ctx context.Context) error
}

// FeedbackSvcFacade defines feedback and tool usage capture
type FeedbackSvcFacade interface {
	// SubmitFeedback stores a feedback entry for a tool.
	SubmitFeedback(ctx context.Context, owner PersonalOwner, req dto.FeedbackRequest) (*domain.Feedback, error)

	// TrackToolUsage records that a tool was used.
	TrackToolUsage(ctx context.Context, owner PersonalOwner, tool string, action string) error
}
