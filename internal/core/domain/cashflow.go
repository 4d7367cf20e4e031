package domain

import "github.com/shopspring/decimal"

// CashflowType distinguishes money in from money out.
type CashflowType string

const (
	Receipt CashflowType = "receipt"
	Payment CashflowType = "payment"
)

// IsValid reports whether t is a known cashflow type.
func (t CashflowType) IsValid() bool {
	return t == Receipt || t == Payment
}

// PaymentMethod is how a cashflow was settled.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodBank PaymentMethod = "bank"
	MethodCash PaymentMethod = "cash"
)

// IsValid reports whether m is a known payment method. Empty is allowed.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCard, MethodBank, MethodCash, "":
		return true
	}
	return false
}

// Cashflow is a unified ledger entry representing either a receipt (money in)
// or a payment (money out).
type Cashflow struct {
	CashflowID string          `json:"cashflowID"`
	UserID     string          `json:"userID"`
	Type       CashflowType    `json:"type"`
	PartyName  string          `json:"partyName"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method,omitempty"`
	Category   string          `json:"category,omitempty"`
	AuditFields
}
