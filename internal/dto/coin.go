package dto

import (
	"time"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// PurchaseCoinsRequest defines a coin purchase. Amount must be one of the
// fixed packages.
type PurchaseCoinsRequest struct {
	Amount        int64  `json:"amount" binding:"required,oneof=10 50 100"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=card bank cash"`
}

// FacilitatePurchaseRequest defines an agent-facilitated coin purchase.
type FacilitatePurchaseRequest struct {
	TraderID      string `json:"traderID" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,oneof=10 50 100"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=card bank cash"`
}

// AdminCreditRequest defines an admin coin grant.
type AdminCreditRequest struct {
	UserID string `json:"userID" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Notes  string `json:"notes"`
}

// ReceiptUploadMeta describes a receipt file already stored on disk, awaiting
// its metadata row and coin debit. Built by the handler, never bound from a
// request body.
type ReceiptUploadMeta struct {
	FileName    string
	FilePath    string
	ContentType string
	SizeBytes   int64
}

// ReceiptUploadResponse defines a stored receipt upload returned by the API.
type ReceiptUploadResponse struct {
	ReceiptID   string    `json:"receiptID"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType,omitempty"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ToReceiptUploadResponse converts a domain.ReceiptUpload to its DTO.
func ToReceiptUploadResponse(receipt *domain.ReceiptUpload) ReceiptUploadResponse {
	return ReceiptUploadResponse{
		ReceiptID:   receipt.ReceiptID,
		FileName:    receipt.FileName,
		ContentType: receipt.ContentType,
		SizeBytes:   receipt.SizeBytes,
		UploadedAt:  receipt.UploadedAt,
	}
}

// CoinTransactionResponse defines a coin ledger entry returned by the API.
type CoinTransactionResponse struct {
	TransactionID      string    `json:"transactionID"`
	UserID             string    `json:"userID"`
	Amount             int64     `json:"amount"`
	Type               string    `json:"type"`
	Ref                string    `json:"ref,omitempty"`
	FacilitatedByAgent string    `json:"facilitatedByAgent,omitempty"`
	PaymentMethod      string    `json:"paymentMethod,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	Date               time.Time `json:"date"`
}

// BalanceResponse wraps a coin balance.
type BalanceResponse struct {
	UserID  string `json:"userID"`
	Balance int64  `json:"balance"`
}

// CoinHistoryResponse wraps a list of coin transactions.
type CoinHistoryResponse struct {
	Transactions []CoinTransactionResponse `json:"transactions"`
}

// ToCoinTransactionResponse converts a domain.CoinTransaction to its DTO.
func ToCoinTransactionResponse(txn *domain.CoinTransaction) CoinTransactionResponse {
	return CoinTransactionResponse{
		TransactionID:      txn.TransactionID,
		UserID:             txn.UserID,
		Amount:             txn.Amount,
		Type:               string(txn.Type),
		Ref:                txn.Ref,
		FacilitatedByAgent: txn.FacilitatedByAgent,
		PaymentMethod:      string(txn.PaymentMethod),
		Notes:              txn.Notes,
		Date:               txn.Date,
	}
}

// ToCoinHistoryResponse converts a slice of coin transactions.
func ToCoinHistoryResponse(txns []domain.CoinTransaction) CoinHistoryResponse {
	responses := make([]CoinTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToCoinTransactionResponse(&txns[i])
	}
	return CoinHistoryResponse{Transactions: responses}
}
