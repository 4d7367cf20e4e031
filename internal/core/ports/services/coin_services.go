package services

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// CoinSvcFacade defines the coin economy service surface. All balance
// mutations in the application go through this service so that the ledger
// and audit trail stay consistent with the balance.
type CoinSvcFacade interface {
	// GetBalance returns a user's current coin balance.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// Purchase credits one of the fixed purchasable amounts to a user.
	// An agent may facilitate the purchase on a trader's behalf.
	Purchase(ctx context.Context, actor *domain.User, req dto.PurchaseCoinsRequest) (*domain.CoinTransaction, error)

	// Charge debits a metered operation's cost from the actor. Admins are
	// never charged; the returned transaction is nil in that case.
	Charge(ctx context.Context, actor *domain.User, cost int64, action string, ref string) (*domain.CoinTransaction, error)

	// AdminCredit grants coins to any user. Admin only.
	AdminCredit(ctx context.Context, requestingUser *domain.User, req dto.AdminCreditRequest) (*domain.CoinTransaction, error)

	// History lists coin transactions: the actor's own, or everyone's for admins.
	History(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.CoinTransaction, error)

	// UploadReceipt stores payment receipt metadata, debiting the upload cost
	// in the same transaction as the insert. Admins are not charged.
	UploadReceipt(ctx context.Context, actor *domain.User, meta dto.ReceiptUploadMeta) (*domain.ReceiptUpload, error)
}
