package domain

import "time"

// AuditLog is an append-only trace of privileged or system actions.
type AuditLog struct {
	LogID     string         `json:"logID"`
	AdminID   string         `json:"adminID"` // acting user, or "system"
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// AgentActivityType enumerates what agents do on behalf of traders.
type AgentActivityType string

const (
	ActivityTraderRegistration AgentActivityType = "trader_registration"
	ActivityTokenFacilitation  AgentActivityType = "token_facilitation"
	ActivityReportGeneration   AgentActivityType = "report_generation"
	ActivityTraderAssistance   AgentActivityType = "trader_assistance"
)

// IsValid reports whether t is a known agent activity type.
func (t AgentActivityType) IsValid() bool {
	switch t {
	case ActivityTraderRegistration, ActivityTokenFacilitation,
		ActivityReportGeneration, ActivityTraderAssistance:
		return true
	}
	return false
}

// AgentActivity records one action an agent performed.
type AgentActivity struct {
	ActivityID   string            `json:"activityID"`
	AgentID      string            `json:"agentID"`
	ActivityType AgentActivityType `json:"activityType"`
	TraderID     string            `json:"traderID,omitempty"`
	Details      map[string]any    `json:"details,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// ReminderType is the outbound channel a debt reminder went through.
type ReminderType string

const (
	ReminderSMS      ReminderType = "sms"
	ReminderWhatsApp ReminderType = "whatsapp"
)

// ReminderLog records one reminder message sent for a debt record.
type ReminderLog struct {
	NotificationID string         `json:"notificationID"`
	UserID         string         `json:"userID"`
	DebtID         string         `json:"debtID"`
	Recipient      string         `json:"recipient"`
	Message        string         `json:"message"`
	Type           ReminderType   `json:"type"`
	APIResponse    map[string]any `json:"apiResponse,omitempty"`
	ReadStatus     bool           `json:"readStatus"`
	SentAt         time.Time      `json:"sentAt"`
}

// ToolUsage is appended for each interaction with a personal-finance tool.
type ToolUsage struct {
	UsageID   string    `json:"usageID"`
	ToolName  string    `json:"toolName"`
	UserID    string    `json:"userID,omitempty"`
	SessionID string    `json:"sessionID,omitempty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Feedback is a user rating for one of the tools.
type Feedback struct {
	FeedbackID string    `json:"feedbackID"`
	UserID     string    `json:"userID"`
	ToolName   string    `json:"toolName"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
