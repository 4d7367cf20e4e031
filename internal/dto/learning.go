package dto

import (
	"encoding/json"
	"time"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// CourseWithProgress pairs a course with the caller's completion state.
type CourseWithProgress struct {
	CourseID         string  `json:"courseID"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	IsPremium        bool    `json:"isPremium"`
	LessonCount      int     `json:"lessonCount"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	PercentComplete  float64 `json:"percentComplete"`
}

// LessonSummary is a lesson without its content body.
type LessonSummary struct {
	LessonID string `json:"lessonID"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// CourseDetail is one course with its lesson list.
type CourseDetail struct {
	CourseID    string          `json:"courseID"`
	TitleEn     string          `json:"titleEn"`
	TitleHa     string          `json:"titleHa"`
	Description string          `json:"description"`
	IsPremium   bool            `json:"isPremium"`
	Lessons     []LessonSummary `json:"lessons"`
}

// LessonResponse defines a lesson with its content returned by the API.
type LessonResponse struct {
	LessonID  string          `json:"lessonID"`
	CourseID  string          `json:"courseID"`
	Title     string          `json:"title"`
	Position  int             `json:"position"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UploadLessonRequest defines an admin lesson upload. Content must satisfy
// the lesson content schema.
type UploadLessonRequest struct {
	LessonID string          `json:"lessonID" binding:"omitempty,max=100"`
	Title    string          `json:"title" binding:"required,max=200"`
	Position int             `json:"position" binding:"gte=0"`
	Content  json.RawMessage `json:"content" binding:"required"`
}

// ProgressResponse defines course progress returned by the API.
type ProgressResponse struct {
	CourseID         string    `json:"courseID"`
	LessonsCompleted []string  `json:"lessonsCompleted"`
	CurrentLesson    string    `json:"currentLesson,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToLessonResponse converts a domain.Lesson to LessonResponse DTO.
func ToLessonResponse(l *domain.Lesson) LessonResponse {
	return LessonResponse{
		LessonID:  l.LessonID,
		CourseID:  l.CourseID,
		Title:     l.Title,
		Position:  l.Position,
		Content:   json.RawMessage(l.Content),
		UpdatedAt: l.UpdatedAt,
	}
}

// ToProgressResponse converts a domain.LearningProgress to its DTO.
func ToProgressResponse(p *domain.LearningProgress) ProgressResponse {
	return ProgressResponse{
		CourseID:         p.CourseID,
		LessonsCompleted: p.LessonsCompleted,
		CurrentLesson:    p.CurrentLesson,
		UpdatedAt:        p.UpdatedAt,
	}
}
