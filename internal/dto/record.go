package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// CreateRecordRequest defines the data for a new debtor/creditor record.
type CreateRecordRequest struct {
	Type        string          `json:"type" binding:"required,oneof=debtor creditor"`
	Name        string          `json:"name" binding:"required,max=100"`
	Contact     string          `json:"contact"`
	AmountOwed  decimal.Decimal `json:"amountOwed" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// UpdateRecordRequest defines the updatable fields of a record.
type UpdateRecordRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Contact     *string          `json:"contact"`
	AmountOwed  *decimal.Decimal `json:"amountOwed"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// ListRecordsParams defines query parameters for listing records.
type ListRecordsParams struct {
	Type   string `form:"type" binding:"omitempty,oneof=debtor creditor"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// SendReminderRequest selects the channel for a payment reminder.
type SendReminderRequest struct {
	Channel string `json:"channel" binding:"required,oneof=sms whatsapp"`
	Message string `json:"message" binding:"omitempty,max=320"`
}

// RecordResponse defines a record returned by the API.
type RecordResponse struct {
	RecordID      string          `json:"recordID"`
	UserID        string          `json:"userID"`
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	Contact       string          `json:"contact,omitempty"`
	AmountOwed    decimal.Decimal `json:"amountOwed"`
	Description   string          `json:"description,omitempty"`
	ReminderCount int             `json:"reminderCount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListRecordsResponse wraps a list of records.
type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

// ListRemindersResponse wraps a list of dispatched reminders.
type ListRemindersResponse struct {
	Reminders []ReminderLogResponse `json:"reminders"`
}

// ReminderLogResponse defines a dispatched reminder returned by the API.
type ReminderLogResponse struct {
	NotificationID string    `json:"notificationID"`
	RecordID       string    `json:"recordID"`
	Type           string    `json:"type"`
	Recipient      string    `json:"recipient"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sentAt"`
}

// ToRecordResponse converts a domain.Record to RecordResponse DTO.
func ToRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		RecordID:      r.RecordID,
		UserID:        r.UserID,
		Type:          string(r.Type),
		Name:          r.Name,
		Contact:       r.Contact,
		AmountOwed:    r.AmountOwed,
		Description:   r.Description,
		ReminderCount: r.ReminderCount,
		CreatedAt:     r.CreatedAt,
	}
}

// ToListRecordsResponse converts a slice of domain.Record.
func ToListRecordsResponse(records []domain.Record) ListRecordsResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return ListRecordsResponse{Records: responses}
}

// ToListRemindersResponse converts a slice of domain.ReminderLog.
func ToListRemindersResponse(logs []domain.ReminderLog) ListRemindersResponse {
	responses := make([]ReminderLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToReminderLogResponse(&logs[i])
	}
	return ListRemindersResponse{Reminders: responses}
}

// ToReminderLogResponse converts a domain.ReminderLog to its DTO.
func ToReminderLogResponse(l *domain.ReminderLog) ReminderLogResponse {
	return ReminderLogResponse{
		NotificationID: l.NotificationID,
		RecordID:       l.DebtID,
		Type:           string(l.Type),
		Recipient:      l.Recipient,
		Message:        l.Message,
		SentAt:         l.SentAt,
	}
}
