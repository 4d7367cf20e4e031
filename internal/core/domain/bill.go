package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillFrequency is how often a bill recurs.
type BillFrequency string

const (
	FrequencyOneOff    BillFrequency = "one-off"
	FrequencyWeekly    BillFrequency = "weekly"
	FrequencyMonthly   BillFrequency = "monthly"
	FrequencyQuarterly BillFrequency = "quarterly"
)

// IsValid reports whether f is a known bill frequency.
func (f BillFrequency) IsValid() bool {
	switch f {
	case FrequencyOneOff, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	BillUnpaid  BillStatus = "unpaid"
	BillPaid    BillStatus = "paid"
	BillPending BillStatus = "pending"
	BillOverdue BillStatus = "overdue"
)

// IsValid reports whether s is a known bill status.
func (s BillStatus) IsValid() bool {
	switch s {
	case BillUnpaid, BillPaid, BillPending, BillOverdue:
		return true
	}
	return false
}

// Bill is a planned recurring or one-off obligation tracked by the bill planner.
type Bill struct {
	BillID    string          `json:"billID"`
	UserID    string          `json:"userID,omitempty"`
	SessionID string          `json:"sessionID,omitempty"`
	UserEmail string          `json:"userEmail,omitempty"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"dueDate"`
	Frequency BillFrequency   `json:"frequency"`
	Category  string          `json:"category,omitempty"`
	Status    BillStatus      `json:"status"`
	SendEmail bool            `json:"sendEmail"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NextDueDate returns the due date of the following occurrence, or the zero
// time for one-off bills.
func (b *Bill) NextDueDate() time.Time {
	switch b.Frequency {
	case FrequencyWeekly:
		return b.DueDate.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return b.DueDate.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return b.DueDate.AddDate(0, 3, 0)
	}
	return time.Time{}
}
