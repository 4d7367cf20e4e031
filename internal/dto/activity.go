package dto

import (
	"time"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// LogAgentActivityRequest defines a free-form agent assistance entry.
type LogAgentActivityRequest struct {
	ActivityType string         `json:"activityType" binding:"required,oneof=trader_registration token_facilitation report_generation trader_assistance"`
	TraderID     string         `json:"traderID"`
	Details      map[string]any `json:"details"`
}

// AuditLogResponse defines an audit trail entry returned by the API.
type AuditLogResponse struct {
	LogID     string         `json:"logID"`
	AdminID   string         `json:"adminID"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// FeedbackRequest defines a tool rating submission.
type FeedbackRequest struct {
	ToolName string `json:"toolName" binding:"required,max=50"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"omitempty,max=1000"`
}

// FeedbackResponse defines a feedback entry returned by the API.
type FeedbackResponse struct {
	FeedbackID string    `json:"feedbackID"`
	UserID     string    `json:"userID,omitempty"`
	ToolName   string    `json:"toolName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ToAuditLogResponse converts a domain.AuditLog to its DTO.
func ToAuditLogResponse(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		LogID:     l.LogID,
		AdminID:   l.AdminID,
		Action:    l.Action,
		Details:   l.Details,
		Timestamp: l.Timestamp,
	}
}

// ToAuditLogResponses converts a slice of domain.AuditLog.
func ToAuditLogResponses(logs []domain.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToAuditLogResponse(&logs[i])
	}
	return responses
}

// ToFeedbackResponse converts a domain.Feedback to its DTO.
func ToFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		FeedbackID: f.FeedbackID,
		UserID:     f.UserID,
		ToolName:   f.ToolName,
		Rating:     f.Rating,
		Comment:    f.Comment,
		Timestamp:  f.Timestamp,
	}
}

// ToFeedbackResponses converts a slice of domain.Feedback.
func ToFeedbackResponses(items []domain.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, len(items))
	for i := range items {
		responses[i] = ToFeedbackResponse(&items[i])
	}
	return responses
}
