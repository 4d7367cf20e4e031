package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/utils/finance"
)

// quizService implements the financial personality quiz.
type quizService struct {
	BaseService
	quizRepo  portsrepo.QuizRepository
	usageRepo portsrepo.ToolUsageRepository
}

// NewQuizService creates a new quiz service instance.
func NewQuizService(quizRepo portsrepo.QuizRepository, usageRepo portsrepo.ToolUsageRepository) portssvc.QuizSvcFacade {
	return &quizService{
		quizRepo:  quizRepo,
		usageRepo: usageRepo,
	}
}

var _ portssvc.QuizSvcFacade = (*quizService)(nil)

// SubmitQuiz scores a quiz submission and persists the result.
func (s *quizService) SubmitQuiz(ctx context.Context, owner portssvc.PersonalOwner, req dto.QuizRequest) (*dto.QuizResponse, error) {
	answers := make([]domain.QuizAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = domain.QuizAnswer(a)
	}

	score, err := finance.ScoreQuiz(answers)
	if err != nil {
		return nil, err
	}

	result := domain.QuizResult{
		ResultID:    uuid.NewString(),
		UserID:      owner.UserID,
		SessionID:   owner.SessionID,
		Answers:     answers,
		Score:       score,
		Personality: finance.AssignPersonality(score),
		Badges:      finance.QuizBadges(score),
		CreatedAt:   time.Now(),
	}

	if err := s.quizRepo.SaveQuizResult(ctx, result); err != nil {
		s.LogError(ctx, err, "Failed to save quiz result")
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	trackTool(ctx, &s.BaseService, s.usageRepo, owner, "quiz", "submit")

	return &dto.QuizResponse{
		ResultID:    result.ResultID,
		Score:       result.Score,
		Personality: result.Personality,
		Badges:      result.Badges,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// QuizHistory lists the owner's results, newest first.
func (s *quizService) QuizHistory(ctx context.Context, owner portssvc.PersonalOwner, limit int) ([]domain.QuizResult, error) {
	if limit <= 0 {
		limit = 20
	}
	results, err := s.quizRepo.FindQuizResults(ctx, repoOwner(owner), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}
	return results, nil
}
