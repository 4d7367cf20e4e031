package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxActivityRepository implements portsrepo.ActivityRepositoryFacade
var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (log_id, admin_id, action, details, timestamp)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, entry.LogID, entry.AdminID, entry.Action, entry.Details, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert audit log %s: %w", entry.LogID, err)
	}
	return nil
}

func (r *PgxActivityRepository) FindAuditLogs(ctx context.Context, userID string, limit int, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT log_id, admin_id, action, details, timestamp
		FROM audit_logs
		WHERE ($1 = '' OR admin_id = $1)
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]domain.AuditLog, 0)
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(&l.LogID, &l.AdminID, &l.Action, &l.Details, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}
	return logs, nil
}

func (r *PgxActivityRepository) SaveAgentActivity(ctx context.Context, activity domain.AgentActivity) error {
	query := `
		INSERT INTO agent_activities (activity_id, agent_id, activity_type, trader_id, details, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		activity.ActivityID,
		activity.AgentID,
		activity.ActivityType,
		activity.TraderID,
		activity.Details,
		activity.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert agent activity %s: %w", activity.ActivityID, err)
	}
	return nil
}

func (r *PgxActivityRepository) FindAgentActivities(ctx context.Context, agentID string, limit int, offset int) ([]domain.AgentActivity, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT activity_id, agent_id, activity_type, trader_id, details, timestamp
		FROM agent_activities
		WHERE agent_id = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent activities for %s: %w", agentID, err)
	}
	defer rows.Close()

	activities := make([]domain.AgentActivity, 0)
	for rows.Next() {
		var a domain.AgentActivity
		if err := rows.Scan(&a.ActivityID, &a.AgentID, &a.ActivityType, &a.TraderID, &a.Details, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan agent activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agent activities: %w", err)
	}
	return activities, nil
}

func (r *PgxActivityRepository) SaveToolUsage(ctx context.Context, usage domain.ToolUsage) error {
	query := `
		INSERT INTO tool_usage (usage_id, tool_name, user_id, session_id, action, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		usage.UsageID,
		usage.ToolName,
		usage.UserID,
		usage.SessionID,
		usage.Action,
		usage.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tool usage %s: %w", usage.UsageID, err)
	}
	return nil
}

func (r *PgxActivityRepository) CountToolUsage(ctx context.Context) (map[string]int64, error) {
	query := `SELECT tool_name, COUNT(*) FROM tool_usage GROUP BY tool_name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count tool usage: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var tool string
		var count int64
		if err := rows.Scan(&tool, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tool usage count: %w", err)
		}
		counts[tool] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tool usage counts: %w", err)
	}
	return counts, nil
}

func (r *PgxActivityRepository) SaveFeedback(ctx context.Context, feedback domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (feedback_id, user_id, tool_name, rating, comment, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		feedback.FeedbackID,
		feedback.UserID,
		feedback.ToolName,
		feedback.Rating,
		feedback.Comment,
		feedback.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback %s: %w", feedback.FeedbackID, err)
	}
	return nil
}

func (r *PgxActivityRepository) FindFeedback(ctx context.Context, limit int, offset int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT feedback_id, user_id, tool_name, rating, comment, timestamp
		FROM feedbacks
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Feedback, 0)
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.FeedbackID, &f.UserID, &f.ToolName, &f.Rating, &f.Comment, &f.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}
	return items, nil
}
