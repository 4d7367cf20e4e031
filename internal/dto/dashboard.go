package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// DashboardOverview is the personal/trader landing page summary.
type DashboardOverview struct {
	User            UserResponse              `json:"user"`
	CoinBalance     int64                     `json:"coinBalance"`
	TotalOwedToMe   decimal.Decimal           `json:"totalOwedToMe"`
	TotalIOwe       decimal.Decimal           `json:"totalIOwe"`
	NetCashflow     decimal.Decimal           `json:"netCashflow"`
	RecentRecords   []RecordResponse          `json:"recentRecords"`
	RecentCashflows []CashflowResponse        `json:"recentCashflows"`
	LowStockItems   []InventoryItemResponse   `json:"lowStockItems,omitempty"`
	RecentCoins     []CoinTransactionResponse `json:"recentCoins"`
}

// AgentDashboard is the agent landing page summary.
type AgentDashboard struct {
	Agent             UserResponse            `json:"agent"`
	RegisteredTraders int64                   `json:"registeredTraders"`
	TokensFacilitated int64                   `json:"tokensFacilitated"`
	RecentActivities  []AgentActivityResponse `json:"recentActivities"`
}

// AdminDashboard is the platform-wide summary for administrators.
type AdminDashboard struct {
	UserCounts     map[string]int64          `json:"userCounts"`
	ToolUsage      map[string]int64          `json:"toolUsage"`
	RecentCoins    []CoinTransactionResponse `json:"recentCoins"`
	RecentAudits   []AuditLogResponse        `json:"recentAudits"`
	RecentFeedback []FeedbackResponse        `json:"recentFeedback"`
}

// AgentActivityResponse defines an agent activity entry returned by the API.
type AgentActivityResponse struct {
	ActivityID   string         `json:"activityID"`
	AgentID      string         `json:"agentID"`
	ActivityType string         `json:"activityType"`
	TraderID     string         `json:"traderID,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// ToAgentActivityResponse converts a domain.AgentActivity to its DTO.
func ToAgentActivityResponse(a *domain.AgentActivity) AgentActivityResponse {
	return AgentActivityResponse{
		ActivityID:   a.ActivityID,
		AgentID:      a.AgentID,
		ActivityType: string(a.ActivityType),
		TraderID:     a.TraderID,
		Details:      a.Details,
		Timestamp:    a.Timestamp,
	}
}

// ToAgentActivityResponses converts a slice of domain.AgentActivity.
func ToAgentActivityResponses(activities []domain.AgentActivity) []AgentActivityResponse {
	responses := make([]AgentActivityResponse, len(activities))
	for i := range activities {
		responses[i] = ToAgentActivityResponse(&activities[i])
	}
	return responses
}
