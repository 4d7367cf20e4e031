package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
	"github.com/fipithx/ficore_backend/internal/platform/config"
)

// Limits on uploaded payment receipts.
const maxReceiptUploadBytes = 5 << 20

var allowedReceiptExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// coinHandler handles coin balance, purchase and ledger requests.
type coinHandler struct {
	coinService portssvc.CoinSvcFacade
	uploadDir   string
}

// newCoinHandler creates a new coinHandler.
func newCoinHandler(cs portssvc.CoinSvcFacade, uploadDir string) *coinHandler {
	return &coinHandler{coinService: cs, uploadDir: uploadDir}
}

// registerCoinRoutes sets up the coin routes under the authenticated group.
func registerCoinRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newCoinHandler(services.Coin, cfg.ReceiptUploadDir)

	coins := rg.Group("/coins")
	{
		coins.GET("/balance", h.getBalance)
		coins.GET("/history", middleware.RequireSetupComplete(), h.history)
		coins.POST("/purchase", h.purchase)
		coins.POST("/receipt-upload", middleware.RequireRoles(domain.RoleTrader, domain.RolePersonal), h.receiptUpload)
		coins.POST("/credit", middleware.RequireRoles(), h.adminCredit)
	}
}

// getBalance godoc
// @Summary Get the current coin balance
// @Tags coins
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /coins/balance [get]
func (h *coinHandler) getBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.coinService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// history godoc
// @Summary List coin transactions
// @Description Returns the caller's coin ledger. Admins see all users.
// @Tags coins
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.CoinHistoryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /coins/history [get]
func (h *coinHandler) history(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.coinService.History(c.Request.Context(), actor, limit, offset)
	if err != nil {
		respondError(c, err, "Failed to fetch coin history")
		return
	}
	c.JSON(http.StatusOK, dto.ToCoinHistoryResponse(txns))
}

// purchase godoc
// @Summary Purchase a coin package
// @Description Credits one of the fixed packages (10, 50 or 100 coins).
// @Tags coins
// @Accept json
// @Produce json
// @Param purchase body dto.PurchaseCoinsRequest true "Package and payment method"
// @Success 201 {object} dto.CoinTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /coins/purchase [post]
func (h *coinHandler) purchase(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.PurchaseCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.coinService.Purchase(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to purchase coins")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCoinTransactionResponse(txn))
}

// receiptUpload godoc
// @Summary Upload a payment receipt
// @Description Stores a proof-of-payment file (jpg, png or pdf, max 5MB) and
// @Description debits 1 coin atomically with the metadata insert.
// @Tags coins
// @Accept multipart/form-data
// @Produce json
// @Param receipt formData file true "Receipt file"
// @Success 201 {object} dto.ReceiptUploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Security BearerAuth
// @Router /coins/receipt-upload [post]
func (h *coinHandler) receiptUpload(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt file is required"})
		return
	}
	if file.Size > maxReceiptUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt file exceeds the 5MB limit"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedReceiptExtensions[ext] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt must be a jpg, png or pdf file"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(c, err, "Failed to store receipt")
		return
	}
	storedPath := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		respondError(c, err, "Failed to store receipt")
		return
	}

	receipt, err := h.coinService.UploadReceipt(c.Request.Context(), actor, dto.ReceiptUploadMeta{
		FileName:    filepath.Base(file.Filename),
		FilePath:    storedPath,
		ContentType: file.Header.Get("Content-Type"),
		SizeBytes:   file.Size,
	})
	if err != nil {
		// The metadata row was never written, so the stored file is orphaned.
		_ = os.Remove(storedPath)
		respondError(c, err, "Failed to upload receipt")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReceiptUploadResponse(receipt))
}

// adminCredit godoc
// @Summary Grant coins to a user
// @Description Admin only.
// @Tags coins
// @Accept json
// @Produce json
// @Param credit body dto.AdminCreditRequest true "Recipient and amount"
// @Success 201 {object} dto.CoinTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Security BearerAuth
// @Router /coins/credit [post]
func (h *coinHandler) adminCredit(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AdminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.coinService.AdminCredit(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to credit coins")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCoinTransactionResponse(txn))
}
