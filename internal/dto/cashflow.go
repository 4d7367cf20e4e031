package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// CreateCashflowRequest defines the data for a new receipt or payment entry.
type CreateCashflowRequest struct {
	Type      string          `json:"type" binding:"required,oneof=receipt payment"`
	PartyName string          `json:"partyName" binding:"required,max=100"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"omitempty,oneof=card bank cash"`
	Category  string          `json:"category" binding:"omitempty,max=50"`
}

// UpdateCashflowRequest defines the updatable fields of a cashflow entry.
type UpdateCashflowRequest struct {
	PartyName *string          `json:"partyName" binding:"omitempty,max=100"`
	Amount    *decimal.Decimal `json:"amount"`
	Method    *string          `json:"method" binding:"omitempty,oneof=card bank cash"`
	Category  *string          `json:"category" binding:"omitempty,max=50"`
}

// ListCashflowsRequest defines query parameters for listing cashflow entries.
type ListCashflowsRequest struct {
	Type   string    `form:"type" binding:"omitempty,oneof=receipt payment"`
	From   time.Time `form:"from" time_format:"2006-01-02"`
	To     time.Time `form:"to" time_format:"2006-01-02"`
	Limit  int       `form:"limit,default=20"`
	Offset int       `form:"offset,default=0"`
}

// CashflowResponse defines a cashflow entry returned by the API.
type CashflowResponse struct {
	CashflowID string          `json:"cashflowID"`
	UserID     string          `json:"userID"`
	Type       string          `json:"type"`
	PartyName  string          `json:"partyName"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
	Category   string          `json:"category,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListCashflowsResponse wraps a list of cashflow entries.
type ListCashflowsResponse struct {
	Cashflows []CashflowResponse `json:"cashflows"`
}

// ToCashflowResponse converts a domain.Cashflow to CashflowResponse DTO.
func ToCashflowResponse(c *domain.Cashflow) CashflowResponse {
	return CashflowResponse{
		CashflowID: c.CashflowID,
		UserID:     c.UserID,
		Type:       string(c.Type),
		PartyName:  c.PartyName,
		Amount:     c.Amount,
		Method:     string(c.Method),
		Category:   c.Category,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCashflowsResponse converts a slice of domain.Cashflow.
func ToListCashflowsResponse(cashflows []domain.Cashflow) ListCashflowsResponse {
	responses := make([]CashflowResponse, len(cashflows))
	for i := range cashflows {
		responses[i] = ToCashflowResponse(&cashflows[i])
	}
	return ListCashflowsResponse{Cashflows: responses}
}
