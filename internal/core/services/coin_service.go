package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// coinService implements the coin economy operations.
type coinService struct {
	BaseService
	coinRepo portsrepo.CoinRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewCoinService creates a new coin service instance.
func NewCoinService(coinRepo portsrepo.CoinRepositoryFacade, userRepo portsrepo.UserReader) portssvc.CoinSvcFacade {
	return &coinService{
		coinRepo: coinRepo,
		userRepo: userRepo,
	}
}

var _ portssvc.CoinSvcFacade = (*coinService)(nil)

// GetBalance returns the current coin balance for a user.
func (s *coinService) GetBalance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.coinRepo.GetBalance(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get coin balance", slog.String("user_id", userID))
		return 0, fmt.Errorf("failed to get coin balance: %w", err)
	}
	return balance, nil
}

// Purchase credits one of the fixed coin packages to the actor's account.
func (s *coinService) Purchase(ctx context.Context, actor *domain.User, req dto.PurchaseCoinsRequest) (*domain.CoinTransaction, error) {
	if !isPurchasableAmount(req.Amount) {
		return nil, fmt.Errorf("%w: amount %d is not a purchasable package", apperrors.ErrValidation, req.Amount)
	}

	now := time.Now()
	txn := domain.CoinTransaction{
		TransactionID: uuid.NewString(),
		UserID:        actor.UserID,
		Amount:        req.Amount,
		Type:          domain.CoinPurchase,
		PaymentMethod: req.PaymentMethod,
		Date:          now,
	}
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: actor.UserID,
		Action:  "coin_purchase",
		Details: map[string]any{
			"transaction_id": txn.TransactionID,
			"amount":         req.Amount,
			"payment_method": req.PaymentMethod,
		},
		Timestamp: now,
	}

	if err := s.coinRepo.Credit(ctx, txn, audit); err != nil {
		s.LogError(ctx, err, "Failed to credit coin purchase", slog.String("user_id", actor.UserID), slog.Int64("amount", req.Amount))
		return nil, fmt.Errorf("failed to credit coin purchase: %w", err)
	}

	s.LogInfo(ctx, "Coin purchase completed", slog.String("user_id", actor.UserID), slog.Int64("amount", req.Amount))
	return &txn, nil
}

// Charge debits the cost of a metered action from the actor. Admins are
// exempt and receive a nil transaction.
func (s *coinService) Charge(ctx context.Context, actor *domain.User, cost int64, action string, ref string) (*domain.CoinTransaction, error) {
	if actor.IsAdmin() {
		s.LogDebug(ctx, "Admin exempt from coin charge", slog.String("user_id", actor.UserID), slog.String("action", action))
		return nil, nil
	}
	if cost <= 0 {
		return nil, fmt.Errorf("%w: charge cost must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.CoinTransaction{
		TransactionID: uuid.NewString(),
		UserID:        actor.UserID,
		Amount:        -cost,
		Type:          domain.CoinSpend,
		Ref:           ref,
		Notes:         action,
		Date:          now,
	}
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: actor.UserID,
		Action:  action,
		Details: map[string]any{
			"transaction_id": txn.TransactionID,
			"cost":           cost,
			"ref":            ref,
		},
		Timestamp: now,
	}

	if err := s.coinRepo.Debit(ctx, txn, audit); err != nil {
		s.LogError(ctx, err, "Failed to charge coins", slog.String("user_id", actor.UserID), slog.String("action", action), slog.Int64("cost", cost))
		return nil, err
	}

	return &txn, nil
}

// AdminCredit grants coins to an arbitrary user. Admin only.
func (s *coinService) AdminCredit(ctx context.Context, requestingUser *domain.User, req dto.AdminCreditRequest) (*domain.CoinTransaction, error) {
	if !requestingUser.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can credit coins", apperrors.ErrForbidden)
	}

	// Resolve the target first so a typo'd user ID fails cleanly.
	target, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", req.UserID, err)
	}

	now := time.Now()
	txn := domain.CoinTransaction{
		TransactionID: uuid.NewString(),
		UserID:        target.UserID,
		Amount:        req.Amount,
		Type:          domain.CoinAdminCredit,
		Notes:         req.Notes,
		Date:          now,
	}
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: requestingUser.UserID,
		Action:  "admin_credit_coins",
		Details: map[string]any{
			"transaction_id": txn.TransactionID,
			"target_user_id": target.UserID,
			"amount":         req.Amount,
			"notes":          req.Notes,
		},
		Timestamp: now,
	}

	if err := s.coinRepo.Credit(ctx, txn, audit); err != nil {
		s.LogError(ctx, err, "Failed to credit coins", slog.String("admin_id", requestingUser.UserID), slog.String("target_user_id", target.UserID))
		return nil, fmt.Errorf("failed to credit coins: %w", err)
	}

	s.LogInfo(ctx, "Admin coin credit completed", slog.String("admin_id", requestingUser.UserID), slog.String("target_user_id", target.UserID), slog.Int64("amount", req.Amount))
	return &txn, nil
}

// History lists coin transactions. Admins see everyone's ledger.
func (s *coinService) History(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.CoinTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	if actor.IsAdmin() {
		txns, err := s.coinRepo.FindAllTransactions(ctx, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list coin transactions: %w", err)
		}
		return txns, nil
	}

	txns, err := s.coinRepo.FindTransactionsByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list coin transactions: %w", err)
	}
	return txns, nil
}

// UploadReceipt stores the metadata of a payment receipt already written to
// disk, debiting the upload cost in the same transaction as the insert.
func (s *coinService) UploadReceipt(ctx context.Context, actor *domain.User, meta dto.ReceiptUploadMeta) (*domain.ReceiptUpload, error) {
	if meta.FileName == "" || meta.FilePath == "" {
		return nil, fmt.Errorf("%w: receipt file name and path are required", apperrors.ErrValidation)
	}

	now := time.Now()
	receipt := domain.ReceiptUpload{
		ReceiptID:   uuid.NewString(),
		UserID:      actor.UserID,
		FileName:    meta.FileName,
		FilePath:    meta.FilePath,
		ContentType: meta.ContentType,
		SizeBytes:   meta.SizeBytes,
		UploadedAt:  now,
	}
	charge := chargeFor(actor, domain.CostReceiptUpload, receipt.ReceiptID, "receipt_upload", now)
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: actor.UserID,
		Action:  "receipt_upload",
		Details: map[string]any{
			"receipt_id": receipt.ReceiptID,
			"file_name":  receipt.FileName,
		},
		Timestamp: now,
	}

	if err := s.coinRepo.SaveReceiptUpload(ctx, receipt, charge, audit); err != nil {
		s.LogError(ctx, err, "Failed to save receipt upload", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to save receipt upload: %w", err)
	}

	s.LogInfo(ctx, "Receipt uploaded", slog.String("user_id", actor.UserID), slog.String("receipt_id", receipt.ReceiptID))
	return &receipt, nil
}

func isPurchasableAmount(amount int64) bool {
	for _, a := range domain.PurchasableCoinAmounts {
		if a == amount {
			return true
		}
	}
	return false
}
