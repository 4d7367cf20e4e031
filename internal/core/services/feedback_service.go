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
	"github.com/fipithx/ficore_backend/internal/utils"
)

// feedbackService captures tool feedback and usage analytics.
type feedbackService struct {
	BaseService
	feedbackRepo portsrepo.FeedbackRepository
	usageRepo    portsrepo.ToolUsageRepository
	posthog      *utils.PosthogClientWrapper
}

// NewFeedbackService creates a new feedback service instance.
func NewFeedbackService(feedbackRepo portsrepo.FeedbackRepository, usageRepo portsrepo.ToolUsageRepository, posthog *utils.PosthogClientWrapper) portssvc.FeedbackSvcFacade {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		usageRepo:    usageRepo,
		posthog:      posthog,
	}
}

var _ portssvc.FeedbackSvcFacade = (*feedbackService)(nil)

// SubmitFeedback stores a feedback entry for a tool.
func (s *feedbackService) SubmitFeedback(ctx context.Context, owner portssvc.PersonalOwner, req dto.FeedbackRequest) (*domain.Feedback, error) {
	feedback := domain.Feedback{
		FeedbackID: uuid.NewString(),
		UserID:     owner.UserID,
		ToolName:   req.ToolName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Timestamp:  time.Now(),
	}
	if err := s.feedbackRepo.SaveFeedback(ctx, feedback); err != nil {
		s.LogError(ctx, err, "Failed to save feedback", "toolName", req.ToolName)
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.posthog.Enqueue(s.distinctID(owner), "feedback_submitted", map[string]any{
		"tool":   req.ToolName,
		"rating": req.Rating,
	})
	return &feedback, nil
}

// TrackToolUsage records that a tool was used.
func (s *feedbackService) TrackToolUsage(ctx context.Context, owner portssvc.PersonalOwner, tool string, action string) error {
	usage := domain.ToolUsage{
		UsageID:   uuid.NewString(),
		ToolName:  tool,
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		Action:    action,
		Timestamp: time.Now(),
	}
	if err := s.usageRepo.SaveToolUsage(ctx, usage); err != nil {
		s.LogError(ctx, err, "Failed to save tool usage", "toolName", tool)
		return fmt.Errorf("failed to save tool usage: %w", err)
	}

	s.posthog.Enqueue(s.distinctID(owner), "tool_used", map[string]any{
		"tool":   tool,
		"action": action,
	})
	return nil
}

// distinctID prefers the user ID, falling back to the anonymous session.
func (s *feedbackService) distinctID(owner portssvc.PersonalOwner) string {
	if owner.UserID != "" {
		return owner.UserID
	}
	return owner.SessionID
}
