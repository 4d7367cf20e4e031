package services

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// ReportFormat selects the output encoding for a generated report.
type ReportFormat string

const (
	ReportFormatJSON ReportFormat = "json"
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatPDF  ReportFormat = "pdf"
)

// ReportSvcFacade defines business report generation. Generating any report
// debits the report cost once, regardless of format.
type ReportSvcFacade interface {
	// ProfitLoss summarises receipts against payments over a period.
	ProfitLoss(ctx context.Context, actor *domain.User, req dto.ReportPeriodRequest) (*dto.ProfitLossReport, error)

	// ProfitLossExport renders the profit/loss report as CSV or PDF bytes.
	ProfitLossExport(ctx context.Context, actor *domain.User, req dto.ReportPeriodRequest, format ReportFormat) ([]byte, string, error)

	// DebtSummary summarises outstanding debtor and creditor amounts.
	DebtSummary(ctx context.Context, actor *domain.User) (*dto.DebtSummaryReport, error)

	// DebtSummaryExport renders the debt summary as CSV or PDF bytes.
	DebtSummaryExport(ctx context.Context, actor *domain.User, format ReportFormat) ([]byte, string, error)

	// InventoryReport summarises stock levels and valuation.
	InventoryReport(ctx context.Context, actor *domain.User) (*dto.InventoryReport, error)

	// InventoryExport renders the inventory report as CSV or PDF bytes.
	InventoryExport(ctx context.Context, actor *domain.User, format ReportFormat) ([]byte, string, error)
}

// DashboardSvcFacade defines the role-specific dashboard aggregations
type DashboardSvcFacade interface {
	// Overview returns the personal/trader dashboard summary. A non-empty
	// targetUserID views another user's dashboard; admin only.
	Overview(ctx context.Context, actor *domain.User, targetUserID string) (*dto.DashboardOverview, error)

	// AgentOverview returns the agent dashboard summary. Agent or admin only.
	AgentOverview(ctx context.Context, actor *domain.User) (*dto.AgentDashboard, error)

	// AdminOverview returns the platform-wide dashboard summary. Admin only.
	AdminOverview(ctx context.Context, actor *domain.User) (*dto.AdminDashboard, error)
}
