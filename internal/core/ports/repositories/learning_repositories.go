package repositories

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// CourseReader defines read operations for courses and lessons
type CourseReader interface {
	// FindCourses retrieves all active courses.
	FindCourses(ctx context.Context) ([]domain.Course, error)

	// FindCourseByID retrieves a specific course.
	FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error)

	// FindLessonsByCourse retrieves a course's lessons in order.
	FindLessonsByCourse(ctx context.Context, courseID string) ([]domain.Lesson, error)

	// FindLessonByID retrieves a specific lesson.
	FindLessonByID(ctx context.Context, lessonID string) (*domain.Lesson, error)
}

// CourseWriter defines write operations for courses and lessons
type CourseWriter interface {
	// SaveCourse persists a course, replacing any existing course with the same ID.
	SaveCourse(ctx context.Context, course domain.Course) error

	// SaveLesson persists a lesson, replacing any existing lesson with the same ID.
	SaveLesson(ctx context.Context, lesson domain.Lesson) error
}

// ProgressRepository defines operations for learning progress
type ProgressRepository interface {
	// UpsertProgress inserts or updates an owner's progress on a course.
	UpsertProgress(ctx context.Context, progress domain.LearningProgress) error

	// FindProgress retrieves an owner's progress on a course; nil when none exists.
	FindProgress(ctx context.Context, owner Owner, courseID string) (*domain.LearningProgress, error)

	// FindAllProgress retrieves all of an owner's course progress rows.
	FindAllProgress(ctx context.Context, owner Owner) ([]domain.LearningProgress, error)
}

// LearningRepositoryFacade combines the learning hub repository interfaces
type LearningRepositoryFacade interface {
	CourseReader
	CourseWriter
	ProgressRepository
}
