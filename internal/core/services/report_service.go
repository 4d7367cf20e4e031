package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

const reportFetchLimit = 1000

// reportService implements business report generation.
type reportService struct {
	BaseService
	cashflowRepo  portsrepo.CashflowReader
	recordRepo    portsrepo.RecordReader
	inventoryRepo portsrepo.InventoryReader
	coinSvc       portssvc.CoinSvcFacade
}

// NewReportService creates a new report service instance.
func NewReportService(cashflowRepo portsrepo.CashflowReader, recordRepo portsrepo.RecordReader, inventoryRepo portsrepo.InventoryReader, coinSvc portssvc.CoinSvcFacade) portssvc.ReportSvcFacade {
	return &reportService{
		cashflowRepo:  cashflowRepo,
		recordRepo:    recordRepo,
		inventoryRepo: inventoryRepo,
		coinSvc:       coinSvc,
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) charge(ctx context.Context, actor *domain.User, ref string) error {
	_, err := s.coinSvc.Charge(ctx, actor, domain.CostGenerateReport, "generate_report", ref)
	return err
}

// ProfitLoss summarises receipts against payments over a period.
func (s *reportService) ProfitLoss(ctx context.Context, actor *domain.User, req dto.ReportPeriodRequest) (*dto.ProfitLossReport, error) {
	if err := s.charge(ctx, actor, "profit_loss"); err != nil {
		return nil, err
	}
	report, err := s.buildProfitLoss(ctx, actor, req)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Profit/loss report generated", slog.String("user_id", actor.UserID))
	return report, nil
}

func (s *reportService) buildProfitLoss(ctx context.Context, actor *domain.User, req dto.ReportPeriodRequest) (*dto.ProfitLossReport, error) {
	receipts, payments, err := s.cashflowRepo.SumCashflows(ctx, actor.UserID, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to sum cashflows: %w", err)
	}
	return &dto.ProfitLossReport{
		UserID:        actor.UserID,
		From:          req.From,
		To:            req.To,
		TotalReceipts: receipts,
		TotalPayments: payments,
		NetCashflow:   receipts.Sub(payments),
		GeneratedAt:   time.Now(),
	}, nil
}

// ProfitLossExport renders the profit/loss report as CSV or PDF bytes.
func (s *reportService) ProfitLossExport(ctx context.Context, actor *domain.User, req dto.ReportPeriodRequest, format portssvc.ReportFormat) ([]byte, string, error) {
	if err := s.charge(ctx, actor, "profit_loss"); err != nil {
		return nil, "", err
	}
	report, err := s.buildProfitLoss(ctx, actor, req)
	if err != nil {
		return nil, "", err
	}

	rows := [][]string{
		{"Total Money In", report.TotalReceipts.StringFixed(2)},
		{"Total Money Out", report.TotalPayments.StringFixed(2)},
		{"Net Cashflow", report.NetCashflow.StringFixed(2)},
	}

	switch format {
	case portssvc.ReportFormatCSV:
		data, err := renderCSV([]string{"Metric", "Amount (NGN)"}, rows)
		if err != nil {
			return nil, "", err
		}
		return data, "profit_loss.csv", nil
	case portssvc.ReportFormatPDF:
		data, err := renderReportTable("Profit & Loss Report", actor.UserID, []string{"Metric", "Amount (NGN)"}, []float64{90, 60}, rows)
		if err != nil {
			return nil, "", err
		}
		return data, "profit_loss.pdf", nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}
}

// DebtSummary summarises outstanding debtor and creditor amounts.
func (s *reportService) DebtSummary(ctx context.Context, actor *domain.User) (*dto.DebtSummaryReport, error) {
	if err := s.charge(ctx, actor, "debt_summary"); err != nil {
		return nil, err
	}
	report, err := s.buildDebtSummary(ctx, actor)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Debt summary generated", slog.String("user_id", actor.UserID))
	return report, nil
}

func (s *reportService) buildDebtSummary(ctx context.Context, actor *domain.User) (*dto.DebtSummaryReport, error) {
	records, err := s.recordRepo.FindRecords(ctx, actor.UserID, "", reportFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	report := &dto.DebtSummaryReport{
		UserID:        actor.UserID,
		TotalOwedToMe: decimal.Zero,
		TotalIOwe:     decimal.Zero,
		GeneratedAt:   time.Now(),
	}
	for i := range records {
		if records[i].Type == domain.Debtor {
			report.TotalOwedToMe = report.TotalOwedToMe.Add(records[i].AmountOwed)
			report.DebtorCount++
		} else {
			report.TotalIOwe = report.TotalIOwe.Add(records[i].AmountOwed)
			report.CreditorCount++
		}
	}
	return report, nil
}

// DebtSummaryExport renders the debt summary as CSV or PDF bytes.
func (s *reportService) DebtSummaryExport(ctx context.Context, actor *domain.User, format portssvc.ReportFormat) ([]byte, string, error) {
	if err := s.charge(ctx, actor, "debt_summary"); err != nil {
		return nil, "", err
	}
	report, err := s.buildDebtSummary(ctx, actor)
	if err != nil {
		return nil, "", err
	}

	rows := [][]string{
		{"Owed To Me", report.TotalOwedToMe.StringFixed(2), fmt.Sprintf("%d", report.DebtorCount)},
		{"I Owe", report.TotalIOwe.StringFixed(2), fmt.Sprintf("%d", report.CreditorCount)},
	}
	headers := []string{"Side", "Amount (NGN)", "Count"}

	switch format {
	case portssvc.ReportFormatCSV:
		data, err := renderCSV(headers, rows)
		if err != nil {
			return nil, "", err
		}
		return data, "debt_summary.csv", nil
	case portssvc.ReportFormatPDF:
		data, err := renderReportTable("Debt Summary", actor.UserID, headers, []float64{60, 60, 30}, rows)
		if err != nil {
			return nil, "", err
		}
		return data, "debt_summary.pdf", nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}
}

// InventoryReport summarises stock levels and valuation.
func (s *reportService) InventoryReport(ctx context.Context, actor *domain.User) (*dto.InventoryReport, error) {
	if err := s.charge(ctx, actor, "inventory"); err != nil {
		return nil, err
	}
	report, err := s.buildInventoryReport(ctx, actor)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Inventory report generated", slog.String("user_id", actor.UserID))
	return report, nil
}

func (s *reportService) buildInventoryReport(ctx context.Context, actor *domain.User) (*dto.InventoryReport, error) {
	items, err := s.inventoryRepo.FindItems(ctx, actor.UserID, reportFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	report := &dto.InventoryReport{
		UserID:          actor.UserID,
		Lines:           make([]dto.InventoryReportLine, 0, len(items)),
		TotalStockValue: decimal.Zero,
		GeneratedAt:     time.Now(),
	}
	for i := range items {
		item := &items[i]
		stockValue := item.SellingPrice.Mul(decimal.NewFromInt(int64(item.Qty)))
		line := dto.InventoryReportLine{
			ItemName:     item.ItemName,
			Qty:          item.Qty,
			Unit:         item.Unit,
			BuyingPrice:  item.BuyingPrice,
			SellingPrice: item.SellingPrice,
			StockValue:   stockValue,
			LowStock:     item.IsLowStock(),
		}
		report.Lines = append(report.Lines, line)
		report.TotalStockValue = report.TotalStockValue.Add(stockValue)
		if line.LowStock {
			report.LowStockCount++
		}
	}
	return report, nil
}

// InventoryExport renders the inventory report as CSV or PDF bytes.
func (s *reportService) InventoryExport(ctx context.Context, actor *domain.User, format portssvc.ReportFormat) ([]byte, string, error) {
	if err := s.charge(ctx, actor, "inventory"); err != nil {
		return nil, "", err
	}
	report, err := s.buildInventoryReport(ctx, actor)
	if err != nil {
		return nil, "", err
	}

	headers := []string{"Item", "Qty", "Buying (NGN)", "Selling (NGN)", "Value (NGN)"}
	rows := make([][]string, 0, len(report.Lines))
	for _, line := range report.Lines {
		rows = append(rows, []string{
			line.ItemName,
			fmt.Sprintf("%d", line.Qty),
			line.BuyingPrice.StringFixed(2),
			line.SellingPrice.StringFixed(2),
			line.StockValue.StringFixed(2),
		})
	}
	rows = append(rows, []string{"TOTAL", "", "", "", report.TotalStockValue.StringFixed(2)})

	switch format {
	case portssvc.ReportFormatCSV:
		data, err := renderCSV(headers, rows)
		if err != nil {
			return nil, "", err
		}
		return data, "inventory_report.csv", nil
	case portssvc.ReportFormatPDF:
		data, err := renderReportTable("Inventory Report", actor.UserID, headers, []float64{60, 20, 35, 35, 35}, rows)
		if err != nil {
			return nil, "", err
		}
		return data, "inventory_report.pdf", nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}
}

func renderCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
