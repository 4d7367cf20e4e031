package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/utils"
)

// Shared gofpdf rendering for receipts and business reports. Amounts are
// rendered in naira with two decimal places.

func formatNaira(amount decimal.Decimal) string {
	return utils.FormatNaira(amount)
}

func newReceiptPDF(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "FiCore Records")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	return pdf
}

func pdfKeyValue(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(50, 8, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}

func pdfFooter(pdf *gofpdf.Fpdf, generatedFor string) {
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated for %s on %s", generatedFor, time.Now().Format("02 Jan 2006 15:04")))
}

func renderRecordReceipt(record *domain.Record) ([]byte, error) {
	label := "Debtor"
	if record.Type == domain.Creditor {
		label = "Creditor"
	}
	pdf := newReceiptPDF(label + " Receipt")
	pdfKeyValue(pdf, "Receipt No.", record.RecordID)
	pdfKeyValue(pdf, "Name", record.Name)
	if record.Contact != "" {
		pdfKeyValue(pdf, "Contact", record.Contact)
	}
	pdfKeyValue(pdf, "Amount Owed", formatNaira(record.AmountOwed))
	if record.Description != "" {
		pdfKeyValue(pdf, "Description", record.Description)
	}
	pdfKeyValue(pdf, "Recorded", record.CreatedAt.Format("02 Jan 2006"))
	pdfFooter(pdf, record.UserID)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderCashflowReceipt(cf *domain.Cashflow) ([]byte, error) {
	label := "Payment Receipt"
	if cf.Type == domain.Receipt {
		label = "Money In Receipt"
	}
	pdf := newReceiptPDF(label)
	pdfKeyValue(pdf, "Receipt No.", cf.CashflowID)
	pdfKeyValue(pdf, "Party", cf.PartyName)
	pdfKeyValue(pdf, "Amount", formatNaira(cf.Amount))
	if cf.Method != "" {
		pdfKeyValue(pdf, "Method", string(cf.Method))
	}
	if cf.Category != "" {
		pdfKeyValue(pdf, "Category", cf.Category)
	}
	pdfKeyValue(pdf, "Recorded", cf.CreatedAt.Format("02 Jan 2006"))
	pdfFooter(pdf, cf.UserID)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// renderReportTable renders a simple tabular report with a title, column
// headers and right-aligned numeric-ish rows.
func renderReportTable(title string, owner string, headers []string, widths []float64, rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "FiCore Records")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdfFooter(pdf, owner)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
