package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
)

type PgxLearningRepository struct {
	BaseRepository
}

func newPgxLearningRepository(pool *pgxpool.Pool) portsrepo.LearningRepositoryFacade {
	return &PgxLearningRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLearningRepository implements portsrepo.LearningRepositoryFacade
var _ portsrepo.LearningRepositoryFacade = (*PgxLearningRepository)(nil)

const courseColumns = `course_id, title_key, title_en, title_ha, description_en, description_ha, is_premium, created_at`

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.CourseID, &c.TitleKey, &c.TitleEn, &c.TitleHa,
		&c.DescriptionEn, &c.DescriptionHa, &c.IsPremium, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxLearningRepository) FindCourses(ctx context.Context) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY course_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]domain.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

func (r *PgxLearningRepository) FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE course_id = $1;`
	course, err := scanCourse(r.Pool.QueryRow(ctx, query, courseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find course %s: %w", courseID, err)
	}
	return course, nil
}

const lessonColumns = `lesson_id, course_id, title, position, content, created_at, updated_at`

func scanLesson(row pgx.Row) (*domain.Lesson, error) {
	var l domain.Lesson
	err := row.Scan(&l.LessonID, &l.CourseID, &l.Title, &l.Position, &l.Content, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgxLearningRepository) FindLessonsByCourse(ctx context.Context, courseID string) ([]domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id = $1 ORDER BY position;`
	rows, err := r.Pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons for course %s: %w", courseID, err)
	}
	defer rows.Close()

	lessons := make([]domain.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, *lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lessons: %w", err)
	}
	return lessons, nil
}

func (r *PgxLearningRepository) FindLessonByID(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE lesson_id = $1;`
	lesson, err := scanLesson(r.Pool.QueryRow(ctx, query, lessonID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lesson %s: %w", lessonID, err)
	}
	return lesson, nil
}

func (r *PgxLearningRepository) SaveCourse(ctx context.Context, course domain.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (course_id) DO UPDATE SET
			title_key = EXCLUDED.title_key,
			title_en = EXCLUDED.title_en,
			title_ha = EXCLUDED.title_ha,
			description_en = EXCLUDED.description_en,
			description_ha = EXCLUDED.description_ha,
			is_premium = EXCLUDED.is_premium;
	`
	_, err := r.Pool.Exec(ctx, query,
		course.CourseID, course.TitleKey, course.TitleEn, course.TitleHa,
		course.DescriptionEn, course.DescriptionHa, course.IsPremium, course.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save course %s: %w", course.CourseID, err)
	}
	return nil
}

func (r *PgxLearningRepository) SaveLesson(ctx context.Context, lesson domain.Lesson) error {
	query := `
		INSERT INTO lessons (` + lessonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (lesson_id) DO UPDATE SET
			title = EXCLUDED.title,
			position = EXCLUDED.position,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		lesson.LessonID, lesson.CourseID, lesson.Title, lesson.Position,
		lesson.Content, lesson.CreatedAt, lesson.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save lesson %s: %w", lesson.LessonID, err)
	}
	return nil
}

func (r *PgxLearningRepository) UpsertProgress(ctx context.Context, progress domain.LearningProgress) error {
	query := `
		INSERT INTO learning_progress (progress_id, user_id, session_id, course_id, lessons_completed, current_lesson, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, session_id, course_id) DO UPDATE SET
			lessons_completed = EXCLUDED.lessons_completed,
			current_lesson = EXCLUDED.current_lesson,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		progress.ProgressID, progress.UserID, progress.SessionID, progress.CourseID,
		progress.LessonsCompleted, progress.CurrentLesson, progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert learning progress for course %s: %w", progress.CourseID, err)
	}
	return nil
}

const progressColumns = `progress_id, user_id, session_id, course_id, lessons_completed, current_lesson, updated_at`

func (r *PgxLearningRepository) FindProgress(ctx context.Context, owner portsrepo.Owner, courseID string) (*domain.LearningProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM learning_progress WHERE ` + ownerClause + ` AND course_id = $3;`
	var p domain.LearningProgress
	err := r.Pool.QueryRow(ctx, query, owner.UserID, owner.SessionID, courseID).Scan(
		&p.ProgressID, &p.UserID, &p.SessionID, &p.CourseID,
		&p.LessonsCompleted, &p.CurrentLesson, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find learning progress for course %s: %w", courseID, err)
	}
	return &p, nil
}

func (r *PgxLearningRepository) FindAllProgress(ctx context.Context, owner portsrepo.Owner) ([]domain.LearningProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM learning_progress WHERE ` + ownerClause + `;`
	rows, err := r.Pool.Query(ctx, query, owner.UserID, owner.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query learning progress: %w", err)
	}
	defer rows.Close()

	progresses := make([]domain.LearningProgress, 0)
	for rows.Next() {
		var p domain.LearningProgress
		if err := rows.Scan(
			&p.ProgressID, &p.UserID, &p.SessionID, &p.CourseID,
			&p.LessonsCompleted, &p.CurrentLesson, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan learning progress: %w", err)
		}
		progresses = append(progresses, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating learning progress: %w", err)
	}
	return progresses, nil
}
