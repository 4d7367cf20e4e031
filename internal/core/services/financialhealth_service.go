package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/utils/finance"
)

// financialHealthService implements the financial health scorer.
type financialHealthService struct {
	BaseService
	scoreRepo portsrepo.HealthScoreRepository
	usageRepo portsrepo.ToolUsageRepository
	mail      portssvc.EmailSender
}

// NewFinancialHealthService creates a new financial health service instance.
func NewFinancialHealthService(scoreRepo portsrepo.HealthScoreRepository, usageRepo portsrepo.ToolUsageRepository, mail portssvc.EmailSender) portssvc.FinancialHealthSvcFacade {
	return &financialHealthService{
		scoreRepo: scoreRepo,
		usageRepo: usageRepo,
		mail:      mail,
	}
}

var _ portssvc.FinancialHealthSvcFacade = (*financialHealthService)(nil)

// ScoreFinancialHealth computes and persists a health score, including how
// the score ranks against all stored scores.
func (s *financialHealthService) ScoreFinancialHealth(ctx context.Context, owner portssvc.PersonalOwner, req dto.HealthScoreRequest) (*dto.HealthScoreResponse, error) {
	result, err := finance.ComputeHealthScore(finance.HealthInput{
		Income:       req.Income,
		Expenses:     req.Expenses,
		Debt:         req.Debt,
		InterestRate: req.InterestRate,
	})
	if err != nil {
		return nil, err
	}

	score := domain.FinancialHealthScore{
		ScoreID:        uuid.NewString(),
		UserID:         owner.UserID,
		SessionID:      owner.SessionID,
		FirstName:      req.FirstName,
		Email:          req.Email,
		UserType:       req.UserType,
		Income:         req.Income,
		Expenses:       req.Expenses,
		Debt:           req.Debt,
		InterestRate:   req.InterestRate,
		DebtToIncome:   result.DebtToIncome,
		SavingsRate:    result.SavingsRate,
		InterestBurden: result.InterestBurden,
		Score:          result.Score,
		Status:         result.Status,
		Badges:         result.Badges,
		CreatedAt:      time.Now(),
	}

	if err := s.scoreRepo.SaveHealthScore(ctx, score); err != nil {
		s.LogError(ctx, err, "Failed to save health score")
		return nil, fmt.Errorf("failed to save health score: %w", err)
	}

	rank := s.rankAgainstAll(ctx, score.Score)

	trackTool(ctx, &s.BaseService, s.usageRepo, owner, "financial_health", "score")

	if score.Email != "" {
		subject := "Your Financial Health Score"
		body := fmt.Sprintf("<p>Hello %s, your financial health score is <strong>%d/100</strong> (%s). You scored higher than %.0f%% of submissions.</p>",
			score.FirstName, score.Score, score.Status, rank)
		if err := s.mail.Send(ctx, score.Email, subject, body); err != nil {
			s.LogError(ctx, err, "Failed to send health score email", slog.String("score_id", score.ScoreID))
		}
	}

	return &dto.HealthScoreResponse{
		ScoreID:        score.ScoreID,
		Score:          score.Score,
		Status:         string(score.Status),
		DebtToIncome:   score.DebtToIncome,
		SavingsRate:    score.SavingsRate,
		InterestBurden: score.InterestBurden,
		Badges:         score.Badges,
		Rank:           rank,
		CreatedAt:      score.CreatedAt,
	}, nil
}

// rankAgainstAll returns the percentage of stored scores at or below the
// given score. A comparison failure degrades to rank 0 rather than failing
// the submission.
func (s *financialHealthService) rankAgainstAll(ctx context.Context, score int) float64 {
	all, err := s.scoreRepo.AllScores(ctx)
	if err != nil || len(all) == 0 {
		if err != nil {
			s.LogDebug(ctx, "Failed to load scores for ranking", slog.String("error", err.Error()))
		}
		return 0
	}
	atOrBelow := 0
	for _, v := range all {
		if v <= float64(score) {
			atOrBelow++
		}
	}
	return float64(atOrBelow) / float64(len(all)) * 100
}

// ScoreHistory lists the owner's scores, newest first.
func (s *financialHealthService) ScoreHistory(ctx context.Context, owner portssvc.PersonalOwner, limit int) ([]domain.FinancialHealthScore, error) {
	if limit <= 0 {
		limit = 20
	}
	scores, err := s.scoreRepo.FindHealthScores(ctx, repoOwner(owner), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list health scores: %w", err)
	}
	return scores, nil
}
