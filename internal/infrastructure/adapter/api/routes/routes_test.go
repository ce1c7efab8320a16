package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/earnings"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/history"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/withdrawal"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/notifier"
	timeadapter "github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/time"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newRouter(t *testing.T, store handler.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNoopLogger()
	tp := timeadapter.NewRealTimeProvider()
	uow := memory.NewUnitOfWork(memory.NewStore(), 0, tp, log)
	hub := notifier.NewHub(notifier.DefaultBuffer, log)
	t.Cleanup(hub.Close)

	converter, err := entity.NewCoinConverter(10)
	require.NoError(t, err)

	earn := earnings.NewService(uow, hub, tp, log, 0)
	withdraw := withdrawal.NewService(uow, converter, hub, tp, log, withdrawal.Config{MinWithdrawalCoins: 2000})
	ledgerSvc := ledger.NewService(uow, earn, withdraw, hub, tp, log, ledger.Config{})
	historySvc := history.NewService(uow, converter, tp, log, history.Config{})
	accounts := account.NewService(uow, tp, log)

	router := gin.New()
	SetupMiddlewares(router, log, tp, nil)
	SetupRoutes(router, Handlers{
		Accounts:     handler.NewAccountHandler(accounts, historySvc, hub, log),
		Transactions: handler.NewTransactionHandler(ledgerSvc, earn, withdraw, log),
		Health:       handler.NewHealthHandler(map[string]handler.Pinger{"store": store}, log),
	})
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func healthy() handler.Pinger {
	return pingFunc(func(context.Context) error { return nil })
}

func TestSpenderFlow(t *testing.T) {
	router := newRouter(t, healthy())

	w := do(t, router, http.MethodPut, "/accounts/viewer-1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	purchase := dto.TransactionRequest{Type: "purchase", CoinAmount: 100, PaymentID: "pay-1"}
	w = do(t, router, http.MethodPost, "/accounts/viewer-1/transactions", purchase)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.TransactionResponse](t, w)
	assert.Equal(t, int64(100), created.NewBalance)
	assert.False(t, created.Duplicate)

	t.Run("payment replay is a no-op", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/accounts/viewer-1/transactions", purchase)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		replay := decode[dto.TransactionResponse](t, w)
		assert.True(t, replay.Duplicate)
		assert.Equal(t, created.Transaction.ID, replay.Transaction.ID)
		assert.Equal(t, int64(100), replay.NewBalance)
	})

	t.Run("overspend reports the exact shortfall", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/accounts/viewer-1/transactions",
			dto.TransactionRequest{Type: "spend", CoinAmount: 150, ContentType: "video", ContentID: "v-1"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		body := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, 4001, body.Code)
		assert.EqualValues(t, 50, body.Details["shortfall"])
		assert.EqualValues(t, 100, body.Details["available"])
	})

	t.Run("async spend stays pending until completed", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/accounts/viewer-1/transactions",
			dto.TransactionRequest{Type: "purchase", CoinAmount: 30, PaymentID: "pay-2", Async: true})
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
		pending := decode[dto.TransactionResponse](t, w)
		assert.Equal(t, "pending", pending.Transaction.Status)

		w = do(t, router, http.MethodPost, "/transactions/"+pending.Transaction.ID+"/complete", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, int64(130), decode[dto.TransactionResponse](t, w).NewBalance)

		w = do(t, router, http.MethodPost, "/transactions/"+pending.Transaction.ID+"/fail", nil)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("history pages newest first", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/accounts/viewer-1/transactions?limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		page := decode[dto.HistoryResponse](t, w)
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.Entries, 1)
		assert.Equal(t, "pay-2", page.Entries[0].PaymentID)

		w = do(t, router, http.MethodGet, "/accounts/viewer-1/transactions?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("balance and reconciliation agree", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/accounts/viewer-1/balance", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		balance := decode[dto.BalanceResponse](t, w)
		assert.Equal(t, int64(130), balance.Balance)
		assert.Equal(t, int64(130), balance.TotalPurchased)

		w = do(t, router, http.MethodGet, "/accounts/viewer-1/reconciliation", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, decode[dto.ReconciliationResponse](t, w).Consistent)
	})
}

func TestContentPurchaseAndWithdrawal(t *testing.T) {
	router := newRouter(t, healthy())

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/accounts/viewer-1", nil).Code)
	w := do(t, router, http.MethodPost, "/accounts/viewer-1/transactions",
		dto.TransactionRequest{Type: "purchase", CoinAmount: 5000, PaymentID: "pay-1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	purchase := dto.PurchaseRequest{
		EventID:     "evt-1",
		ViewerID:    "viewer-1",
		CreatorID:   "creator-1",
		CoinAmount:  2500,
		ContentType: "series",
		ContentID:   "s-1",
	}
	w = do(t, router, http.MethodPost, "/purchases", purchase)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	settled := decode[dto.PurchaseResponse](t, w)
	assert.Equal(t, int64(2500), settled.NewViewerBalance)
	assert.Equal(t, int64(2500), settled.NewEarnerBalance)
	assert.Equal(t, "evt-1", settled.Spend.EventID)
	assert.Equal(t, "evt-1", settled.Earn.EventID)

	w = do(t, router, http.MethodPost, "/purchases", purchase)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[dto.PurchaseResponse](t, w).Duplicate)

	w = do(t, router, http.MethodPost, "/creators/creator-1/withdrawals", dto.WithdrawalRequest{CoinAmount: 1999})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	below := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, 4007, below.Code)
	assert.EqualValues(t, 1, below.Details["missing"])

	w = do(t, router, http.MethodPost, "/creators/creator-1/withdrawals",
		dto.WithdrawalRequest{CoinAmount: 2000, PaymentID: "payout-1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(500), decode[dto.TransactionResponse](t, w).NewBalance)

	w = do(t, router, http.MethodGet, "/accounts/creator-1/earnings", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	earnings := decode[dto.EarningsResponse](t, w)
	assert.Equal(t, int64(500), earnings.Balance)
	assert.Equal(t, int64(2500), earnings.TotalEarned)
	assert.Equal(t, int64(2000), earnings.Withdrawn)
	assert.Equal(t, "50", earnings.BalanceRupees.String())
}

func TestErrorsAndHealth(t *testing.T) {
	t.Run("unknown account", func(t *testing.T) {
		router := newRouter(t, healthy())
		w := do(t, router, http.MethodGet, "/accounts/ghost/balance", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 4040, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newRouter(t, healthy())
		w := do(t, router, http.MethodPost, "/accounts/viewer-1/transactions", map[string]any{"coinAmount": 10})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 4003, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("healthy store", func(t *testing.T) {
		router := newRouter(t, healthy())
		w := do(t, router, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"store":"ok"`)
	})

	t.Run("store down", func(t *testing.T) {
		router := newRouter(t, pingFunc(func(context.Context) error { return errors.New("connection refused") }))
		w := do(t, router, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "degraded")
	})
}
