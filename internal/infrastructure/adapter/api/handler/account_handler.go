package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/dto"
)

// Subscriber streams the balance changes of one account
type Subscriber interface {
	Subscribe(accountID string) (<-chan coreport.BalanceChange, func())
}

// AccountHandler serves account opening and the read-only account views
type AccountHandler struct {
	accounts usecase.AccountUseCase
	history  usecase.HistoryUseCase
	changes  Subscriber
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler; changes may be nil when streaming is off
func NewAccountHandler(
	accounts usecase.AccountUseCase,
	history usecase.HistoryUseCase,
	changes Subscriber,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{accounts: accounts, history: history, changes: changes, logger: logger}
}

// StreamingEnabled reports whether the balance stream endpoint can be served
func (h *AccountHandler) StreamingEnabled() bool {
	return h.changes != nil
}

// OpenAccount handles PUT /accounts/:userId
func (h *AccountHandler) OpenAccount(c *gin.Context) {
	acc, err := h.accounts.OpenSpenderAccount(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountResponse{
		UserID:    acc.UserID,
		Balance:   acc.CoinBalance(),
		CreatedAt: acc.CreatedAt,
	})
}

// GetBalance handles GET /accounts/:userId/balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	balance, err := h.history.GetBalance(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBalanceResponse(balance))
}

// GetEarnings handles GET /accounts/:userId/earnings
func (h *AccountHandler) GetEarnings(c *gin.Context) {
	earnings, err := h.history.GetEarnings(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEarningsResponse(earnings))
}

// GetHistory handles GET /accounts/:userId/transactions
func (h *AccountHandler) GetHistory(c *gin.Context) {
	query := usecase.HistoryQuery{
		TransactionType: c.Query("type"),
		Status:          c.Query("status"),
	}
	var err error
	if query.Limit, err = intQuery(c, "limit"); err != nil {
		badRequest(c, err)
		return
	}
	if query.Offset, err = intQuery(c, "offset"); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.history.GetHistory(c.Request.Context(), c.Param("userId"), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHistoryResponse(page))
}

// Reconcile handles GET /accounts/:userId/reconciliation
func (h *AccountHandler) Reconcile(c *gin.Context) {
	report, err := h.history.Reconcile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReconciliationResponse(report))
}

// StreamBalance handles GET /accounts/:userId/balance/stream as server-sent events.
// The stream ends when the client goes away.
func (h *AccountHandler) StreamBalance(c *gin.Context) {
	userID := c.Param("userId")
	exists, err := h.accounts.AccountExists(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	if !exists {
		fail(c, domainerr.ErrAccountNotFound)
		return
	}

	changes, cancel := h.changes.Subscribe(userID)
	defer cancel()

	h.logger.Debug("Balance stream opened", map[string]any{"user_id": userID})
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case change, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("balance", change)
			return true
		}
	})
	h.logger.Debug("Balance stream closed", map[string]any{"user_id": userID})
}

// intQuery parses an optional integer query parameter, zero when absent
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
