package domain

import "github.com/shopspring/decimal"

// RecordType distinguishes the two sides of the unified debt ledger.
type RecordType string

const (
	Debtor   RecordType = "debtor"
	Creditor RecordType = "creditor"
)

// IsValid reports whether t is a known record type.
func (t RecordType) IsValid() bool {
	return t == Debtor || t == Creditor
}

// Record is a unified ledger entry representing either a debtor or a creditor
// balance owed. Always owned by a single user.
type Record struct {
	RecordID      string          `json:"recordID"`
	UserID        string          `json:"userID"`
	Type          RecordType      `json:"type"`
	Name          string          `json:"name"`
	Contact       string          `json:"contact"`
	AmountOwed    decimal.Decimal `json:"amountOwed"`
	Description   string          `json:"description"`
	ReminderCount int             `json:"reminderCount"`
	AuditFields
}
