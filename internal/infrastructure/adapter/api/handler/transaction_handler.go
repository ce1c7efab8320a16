package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler handles the balance-mutating HTTP requests
type TransactionHandler struct {
	ledger      usecase.LedgerUseCase
	earnings    usecase.EarningsUseCase
	withdrawals usecase.WithdrawalUseCase
	logger      coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	ledger usecase.LedgerUseCase,
	earnings usecase.EarningsUseCase,
	withdrawals usecase.WithdrawalUseCase,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		ledger:      ledger,
		earnings:    earnings,
		withdrawals: withdrawals,
		logger:      logger,
	}
}

// CreateTransaction handles POST /accounts/:userId/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid transaction request format", map[string]any{"error": err.Error()})
		badRequest(c, err)
		return
	}

	result, err := h.ledger.CreateTransaction(c.Request.Context(), req.ToUseCase(c.Param("userId")))
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusCreated
	switch {
	case result.Duplicate:
		status = http.StatusOK
	case result.Transaction.IsPending():
		status = http.StatusAccepted
	}
	c.JSON(status, dto.NewTransactionResponse(result))
}

// CompletePending handles POST /transactions/:entryId/complete
func (h *TransactionHandler) CompletePending(c *gin.Context) {
	result, err := h.ledger.CompletePending(c.Request.Context(), c.Param("entryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(result))
}

// FailPending handles POST /transactions/:entryId/fail
func (h *TransactionHandler) FailPending(c *gin.Context) {
	result, err := h.ledger.FailPending(c.Request.Context(), c.Param("entryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(result))
}

// SettlePurchase handles POST /purchases
func (h *TransactionHandler) SettlePurchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.ledger.SettleContentPurchase(c.Request.Context(), usecase.ContentPurchaseRequest{
		EventID:     req.EventID,
		ViewerID:    req.ViewerID,
		CreatorID:   req.CreatorID,
		CoinAmount:  req.CoinAmount,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, dto.NewPurchaseResponse(result))
}

// RecordEarning handles POST /creators/:creatorId/earnings
func (h *TransactionHandler) RecordEarning(c *gin.Context) {
	var req dto.EarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.earnings.RecordEarning(c.Request.Context(), usecase.EarningRequest{
		CreatorID:   c.Param("creatorId"),
		CoinAmount:  req.CoinAmount,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TransactionResponse{
		Success:     true,
		NewBalance:  result.NewEarnerBalance,
		Transaction: dto.NewEntryResponse(result.Transaction),
	})
}

// Withdraw handles POST /creators/:creatorId/withdrawals
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.withdrawals.Withdraw(c.Request.Context(), usecase.WithdrawalRequest{
		CreatorID:       c.Param("creatorId"),
		CoinAmount:      req.CoinAmount,
		RupeeEquivalent: req.RupeeEquivalent,
		PaymentID:       req.PaymentID,
		Description:     req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, dto.TransactionResponse{
		Success:     true,
		Duplicate:   result.Duplicate,
		NewBalance:  result.NewEarnerBalance,
		Transaction: dto.NewEntryResponse(result.Transaction),
	})
}
