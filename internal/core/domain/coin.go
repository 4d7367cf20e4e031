package domain

import "time"

// CoinTxType classifies coin ledger entries.
type CoinTxType string

const (
	CoinPurchase    CoinTxType = "purchase"
	CoinSpend       CoinTxType = "spend"
	CoinCredit      CoinTxType = "credit"
	CoinAdminCredit CoinTxType = "admin_credit"
)

// IsValid reports whether t is a known coin transaction type.
func (t CoinTxType) IsValid() bool {
	switch t {
	case CoinPurchase, CoinSpend, CoinCredit, CoinAdminCredit:
		return true
	}
	return false
}

// Coin costs per metered action.
const (
	CostCreateRecord    int64 = 1
	CostSendReminder    int64 = 2
	CostGenerateReceipt int64 = 1
	CostGenerateReport  int64 = 1
	CostAddInventory    int64 = 1
	CostAddCashflow     int64 = 1
	CostReceiptUpload   int64 = 1
)

// SignupBonusCoins is credited once at account creation.
const SignupBonusCoins int64 = 10

// PurchasableCoinAmounts are the packages the purchase endpoint accepts.
var PurchasableCoinAmounts = []int64{10, 50, 100}

// ReceiptUpload records a payment receipt a user submitted as proof of an
// offline coin purchase. The file itself lives on the filesystem; only the
// metadata and path are stored.
type ReceiptUpload struct {
	ReceiptID   string    `json:"receiptID"`
	UserID      string    `json:"userID"`
	FileName    string    `json:"fileName"`
	FilePath    string    `json:"-"`
	ContentType string    `json:"contentType,omitempty"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// CoinTransaction is one entry in the append-only coin ledger. Amount is
// signed: positive for credits, negative for spends.
type CoinTransaction struct {
	TransactionID       string     `json:"transactionID"`
	UserID              string     `json:"userID"`
	Amount              int64      `json:"amount"`
	Type                CoinTxType `json:"type"`
	Ref                 string     `json:"ref,omitempty"`
	FacilitatedByAgent  string     `json:"facilitatedByAgent,omitempty"`
	PaymentMethod       string     `json:"paymentMethod,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	Date                time.Time  `json:"date"`
}
