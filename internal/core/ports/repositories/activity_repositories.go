package repositories

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// AuditLogRepository defines operations for the audit trail
type AuditLogRepository interface {
	// SaveAuditLog appends an audit log entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// FindAuditLogs retrieves audit log entries, newest first. An empty
	// userID returns entries across all users.
	FindAuditLogs(ctx context.Context, userID string, limit int, offset int) ([]domain.AuditLog, error)
}

// AgentActivityRepository defines operations for agent activity logs
type AgentActivityRepository interface {
	// SaveAgentActivity appends an agent activity entry.
	SaveAgentActivity(ctx context.Context, activity domain.AgentActivity) error

	// FindAgentActivities retrieves an agent's activity entries, newest first.
	FindAgentActivities(ctx context.Context, agentID string, limit int, offset int) ([]domain.AgentActivity, error)
}

// ToolUsageRepository defines operations for tool usage tracking
type ToolUsageRepository interface {
	// SaveToolUsage appends a tool usage entry.
	SaveToolUsage(ctx context.Context, usage domain.ToolUsage) error

	// CountToolUsage returns usage counts per tool name.
	CountToolUsage(ctx context.Context) (map[string]int64, error)
}

// FeedbackRepository defines operations for user feedback
type FeedbackRepository interface {
	// SaveFeedback appends a feedback entry.
	SaveFeedback(ctx context.Context, feedback domain.Feedback) error

	// FindFeedback retrieves feedback entries, newest first.
	FindFeedback(ctx context.Context, limit int, offset int) ([]domain.Feedback, error)
}

// ActivityRepositoryFacade combines audit, agent activity, tool usage and
// feedback repository interfaces
type ActivityRepositoryFacade interface {
	AuditLogRepository
	AgentActivityRepository
	ToolUsageRepository
	FeedbackRepository
}
