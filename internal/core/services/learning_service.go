package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// lessonContentSchema constrains the JSON body of a lesson. Text lessons
// carry a body, video lessons a URL; a lesson may reference a quiz.
const lessonContentSchema = `{
	"type": "object",
	"required": ["contentType"],
	"properties": {
		"contentType": {"type": "string", "enum": ["text", "video", "pdf"]},
		"body": {"type": "string"},
		"url": {"type": "string"},
		"quizID": {"type": "string"}
	},
	"allOf": [
		{
			"if": {"properties": {"contentType": {"const": "text"}}},
			"then": {"required": ["body"]}
		},
		{
			"if": {"properties": {"contentType": {"enum": ["video", "pdf"]}}},
			"then": {"required": ["url"]}
		}
	],
	"additionalProperties": false
}`

// validateLessonContent checks a lesson content document against the schema.
func validateLessonContent(content []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(lessonContentSchema),
		gojsonschema.NewBytesLoader(content),
	)
	if err != nil {
		return fmt.Errorf("%w: lesson content is not valid JSON: %v", apperrors.ErrValidation, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w: lesson content rejected: %s", apperrors.ErrValidation, result.Errors()[0].String())
	}
	return nil
}

// learningService implements the learning hub.
type learningService struct {
	BaseService
	learningRepo portsrepo.LearningRepositoryFacade
}

// NewLearningService creates a new learning service instance.
func NewLearningService(learningRepo portsrepo.LearningRepositoryFacade) portssvc.LearningSvcFacade {
	return &learningService{learningRepo: learningRepo}
}

var _ portssvc.LearningSvcFacade = (*learningService)(nil)

// ListCourses lists active courses with the owner's progress attached.
func (s *learningService) ListCourses(ctx context.Context, owner portssvc.PersonalOwner) ([]dto.CourseWithProgress, error) {
	courses, err := s.learningRepo.FindCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	progressByCourse := map[string]domain.LearningProgress{}
	if owner.UserID != "" || owner.SessionID != "" {
		progress, err := s.learningRepo.FindAllProgress(ctx, repoOwner(owner))
		if err != nil {
			return nil, fmt.Errorf("failed to load course progress: %w", err)
		}
		for _, p := range progress {
			progressByCourse[p.CourseID] = p
		}
	}

	out := make([]dto.CourseWithProgress, 0, len(courses))
	for _, course := range courses {
		lessons, err := s.learningRepo.FindLessonsByCourse(ctx, course.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to load lessons for course %s: %w", course.CourseID, err)
		}
		entry := dto.CourseWithProgress{
			CourseID:    course.CourseID,
			Title:       course.TitleEn,
			Description: course.DescriptionEn,
			IsPremium:   course.IsPremium,
			LessonCount: len(lessons),
		}
		if p, ok := progressByCourse[course.CourseID]; ok {
			entry.LessonsCompleted = len(p.LessonsCompleted)
			if len(lessons) > 0 {
				entry.PercentComplete = float64(len(p.LessonsCompleted)) / float64(len(lessons)) * 100
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetCourse retrieves one course with its lessons.
func (s *learningService) GetCourse(ctx context.Context, courseID string) (*dto.CourseDetail, error) {
	course, err := s.learningRepo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	lessons, err := s.learningRepo.FindLessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons for course %s: %w", courseID, err)
	}

	detail := &dto.CourseDetail{
		CourseID:    course.CourseID,
		TitleEn:     course.TitleEn,
		TitleHa:     course.TitleHa,
		Description: course.DescriptionEn,
		IsPremium:   course.IsPremium,
		Lessons:     make([]dto.LessonSummary, len(lessons)),
	}
	for i, l := range lessons {
		detail.Lessons[i] = dto.LessonSummary{
			LessonID: l.LessonID,
			Title:    l.Title,
			Position: l.Position,
		}
	}
	return detail, nil
}

// GetLesson retrieves one lesson's content.
func (s *learningService) GetLesson(ctx context.Context, courseID, lessonID string) (*domain.Lesson, error) {
	lesson, err := s.learningRepo.FindLessonByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson %s: %w", lessonID, err)
	}
	if lesson.CourseID != courseID {
		return nil, fmt.Errorf("%w: lesson %s does not belong to course %s", apperrors.ErrNotFound, lessonID, courseID)
	}
	return lesson, nil
}

// CompleteLesson marks a lesson done and updates course progress.
func (s *learningService) CompleteLesson(ctx context.Context, owner portssvc.PersonalOwner, courseID, lessonID string) (*domain.LearningProgress, error) {
	lesson, err := s.GetLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	progress, err := s.learningRepo.FindProgress(ctx, repoOwner(owner), courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course progress: %w", err)
	}
	if progress == nil {
		progress = &domain.LearningProgress{
			ProgressID: uuid.NewString(),
			UserID:     owner.UserID,
			SessionID:  owner.SessionID,
			CourseID:   courseID,
		}
	}

	done := false
	for _, id := range progress.LessonsCompleted {
		if id == lessonID {
			done = true
			break
		}
	}
	if !done {
		progress.LessonsCompleted = append(progress.LessonsCompleted, lessonID)
	}
	progress.CurrentLesson = s.nextLessonID(ctx, courseID, lesson.Position, progress.LessonsCompleted)
	progress.UpdatedAt = time.Now()

	if err := s.learningRepo.UpsertProgress(ctx, *progress); err != nil {
		s.LogError(ctx, err, "Failed to save course progress", "courseID", courseID)
		return nil, fmt.Errorf("failed to save course progress: %w", err)
	}
	return progress, nil
}

// nextLessonID returns the first not-yet-completed lesson after the given
// position, or empty when the course is finished. Lookup failures degrade to
// empty rather than failing the completion.
func (s *learningService) nextLessonID(ctx context.Context, courseID string, afterPosition int, completed []string) string {
	lessons, err := s.learningRepo.FindLessonsByCourse(ctx, courseID)
	if err != nil {
		s.LogDebug(ctx, "Could not determine next lesson", "courseID", courseID, "error", err)
		return ""
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Position < lessons[j].Position })
	doneSet := make(map[string]bool, len(completed))
	for _, id := range completed {
		doneSet[id] = true
	}
	for _, l := range lessons {
		if l.Position > afterPosition && !doneSet[l.LessonID] {
			return l.LessonID
		}
	}
	return ""
}

// UploadLesson validates and stores lesson content. Admin only.
func (s *learningService) UploadLesson(ctx context.Context, actor *domain.User, courseID string, req dto.UploadLessonRequest) (*domain.Lesson, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.learningRepo.FindCourseByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	if err := validateLessonContent(req.Content); err != nil {
		return nil, err
	}

	now := time.Now()
	lesson := domain.Lesson{
		LessonID:  req.LessonID,
		CourseID:  courseID,
		Title:     req.Title,
		Position:  req.Position,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if lesson.LessonID == "" {
		lesson.LessonID = uuid.NewString()
	}

	if err := s.learningRepo.SaveLesson(ctx, lesson); err != nil {
		s.LogError(ctx, err, "Failed to save lesson", "courseID", courseID)
		return nil, fmt.Errorf("failed to save lesson: %w", err)
	}
	s.LogInfo(ctx, "Lesson uploaded", "courseID", courseID, "lessonID", lesson.LessonID, "adminID", actor.UserID)
	return &lesson, nil
}

// seedLesson is one built-in lesson of the course catalogue.
type seedLesson struct {
	id       string
	title    string
	position int
	content  string
}

// seedCourse is one built-in course of the catalogue.
type seedCourse struct {
	course  domain.Course
	lessons []seedLesson
}

// seedCatalogue is the built-in bilingual course catalogue.
var seedCatalogue = []seedCourse{
	{
		course: domain.Course{
			CourseID:      "budgeting_learning_101",
			TitleKey:      "learning_hub_course_budgeting101_title",
			TitleEn:       "Budgeting Learning 101",
			TitleHa:       "Tsarin Kudi 101",
			DescriptionEn: "Learn the basics of budgeting and financial planning to take control of your finances.",
			DescriptionHa: "Koyon asalin tsarin kudi da shirye-shiryen kudi don sarrafa kudin ku.",
		},
		lessons: []seedLesson{
			{
				id:       "budgeting_learning_101-module-1-lesson-1",
				title:    "Income Sources",
				position: 1,
				content:  `{"contentType":"text","body":"Understanding different sources of income is crucial for effective budgeting. Learn about salary, business income, investments, and passive income streams."}`,
			},
			{
				id:       "budgeting_learning_101-module-1-lesson-2",
				title:    "Calculating Net Income",
				position: 2,
				content:  `{"contentType":"text","body":"Learn how to calculate your net income after taxes and deductions. This is the foundation of any successful budget."}`,
			},
			{
				id:       "budgeting_learning_101-module-2-lesson-1",
				title:    "Expense Categories",
				position: 3,
				content:  `{"contentType":"text","body":"Learn to categorize your expenses into fixed, variable, and discretionary spending to better manage your budget."}`,
			},
		},
	},
	{
		course: domain.Course{
			CourseID:      "financial_quiz",
			TitleKey:      "learning_hub_course_financial_quiz_title",
			TitleEn:       "Financial Knowledge Quiz",
			TitleHa:       "Jarabawar Ilimin Kudi",
			DescriptionEn: "Test your financial knowledge with our comprehensive quiz and discover areas for improvement.",
			DescriptionHa: "Gwada ilimin ku na kudi da jarabawa mai cikakke kuma gano wuraren da za ku inganta.",
		},
		lessons: []seedLesson{
			{
				id:       "financial_quiz-module-1-lesson-1",
				title:    "Quiz Introduction",
				position: 1,
				content:  `{"contentType":"text","body":"This comprehensive quiz will help assess your current financial knowledge and identify areas where you can improve your financial literacy.","quizID":"quiz-financial-1"}`,
			},
		},
	},
	{
		course: domain.Course{
			CourseID:      "savings_basics",
			TitleKey:      "learning_hub_course_savings_basics_title",
			TitleEn:       "Savings Basics",
			TitleHa:       "Asalin Tattara Kudi",
			DescriptionEn: "Master the fundamentals of saving money effectively and build a secure financial future.",
			DescriptionHa: "Koyon asalin tattara kudi yadda ya kamata kuma gina makomar kudi mai tsaro.",
		},
		lessons: []seedLesson{
			{
				id:       "savings_basics-module-1-lesson-1",
				title:    "Effective Savings Strategies",
				position: 1,
				content:  `{"contentType":"text","body":"Learn proven strategies for building your savings effectively, including the 50/30/20 rule, automatic savings, and emergency fund planning."}`,
			},
			{
				id:       "savings_basics-module-1-lesson-2",
				title:    "Setting Savings Goals",
				position: 2,
				content:  `{"contentType":"text","body":"Discover how to set realistic and achievable savings goals that will motivate you to save consistently.","quizID":"quiz-savings-1"}`,
			},
		},
	},
}

// SeedCourses loads the built-in course catalogue into storage. Existing
// courses with the same IDs are replaced.
func (s *learningService) SeedCourses(ctx context.Context) error {
	now := time.Now()
	for _, seed := range seedCatalogue {
		course := seed.course
		course.CreatedAt = now
		if err := s.learningRepo.SaveCourse(ctx, course); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.CourseID, err)
		}
		for _, sl := range seed.lessons {
			content := []byte(sl.content)
			if err := validateLessonContent(content); err != nil {
				return fmt.Errorf("seed lesson %s invalid: %w", sl.id, err)
			}
			lesson := domain.Lesson{
				LessonID:  sl.id,
				CourseID:  course.CourseID,
				Title:     sl.title,
				Position:  sl.position,
				Content:   content,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.learningRepo.SaveLesson(ctx, lesson); err != nil {
				return fmt.Errorf("failed to seed lesson %s: %w", sl.id, err)
			}
		}
	}
	s.LogInfo(ctx, "Course catalogue seeded", "courses", len(seedCatalogue))
	return nil
}
