package domain

import "time"

// Course is a learning-hub course with bilingual metadata.
type Course struct {
	CourseID      string    `json:"courseID"` // slug, e.g. "budgeting_learning_101"
	TitleKey      string    `json:"titleKey"`
	TitleEn       string    `json:"titleEn"`
	TitleHa       string    `json:"titleHa"`
	DescriptionEn string    `json:"descriptionEn"`
	DescriptionHa string    `json:"descriptionHa"`
	IsPremium     bool      `json:"isPremium"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Lesson is one content unit inside a course. Content is the validated JSON
// document uploaded by an admin.
type Lesson struct {
	LessonID  string    `json:"lessonID"`
	CourseID  string    `json:"courseID"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	Content   []byte    `json:"-"` // raw JSON, schema-validated on upload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LearningProgress tracks how far a user or anonymous session has progressed
// through a course.
type LearningProgress struct {
	ProgressID       string    `json:"progressID"`
	UserID           string    `json:"userID,omitempty"`
	SessionID        string    `json:"sessionID,omitempty"`
	CourseID         string    `json:"courseID"`
	LessonsCompleted []string  `json:"lessonsCompleted"`
	CurrentLesson    string    `json:"currentLesson,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
