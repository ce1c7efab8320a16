package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

func TestService_CreateTransaction_Purchase(t *testing.T) {
	ctx := context.Background()

	t.Run("credits balance and purchase counter", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 0)
		rupees := decimal.RequireFromString("10.00")

		result, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID:      "viewer-1",
			Type:        "purchase",
			CoinAmount:  100,
			RupeeAmount: &rupees,
			PaymentID:   "pay-1",
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.Duplicate)
		assert.Equal(t, int64(100), result.NewBalance)
		assert.Equal(t, entity.StatusCompleted, result.Transaction.Status)
		assert.Equal(t, "10.00", result.Transaction.RupeeAmount.Decimal.StringFixed(2))

		acc := f.spender(t, "viewer-1")
		assert.Equal(t, int64(100), acc.CoinBalance())
		assert.Equal(t, int64(100), acc.TotalCoinsPurchased)

		changes := f.notifier.published()
		require.Len(t, changes, 1)
		assert.Equal(t, coreport.AccountKindSpender, changes[0].Kind)
		assert.Equal(t, int64(100), changes[0].Delta)
	})

	t.Run("replayed payment id is a no-op", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 0)
		req := usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "purchase", CoinAmount: 100, PaymentID: "pay-1"}

		first, err := f.ledger.CreateTransaction(ctx, req)
		require.NoError(t, err)
		second, err := f.ledger.CreateTransaction(ctx, req)
		require.NoError(t, err)

		assert.True(t, second.Duplicate)
		assert.Equal(t, first.Transaction.ID, second.Transaction.ID)
		assert.Equal(t, int64(100), second.NewBalance)
		assert.Equal(t, int64(100), f.spender(t, "viewer-1").TotalCoinsPurchased)
		assert.Len(t, f.notifier.published(), 1)
	})

	t.Run("concurrent deliveries of one payment apply once", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 0)
		req := usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "purchase", CoinAmount: 75, PaymentID: "pay-race"}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.ledger.CreateTransaction(ctx, req)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(75), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("unknown account is rejected", func(t *testing.T) {
		f := newFixture(t, "")

		_, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "ghost", Type: "purchase", CoinAmount: 10})

		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})
}

func TestService_CreateTransaction_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	f.openSpender(t, "viewer-1", 100)

	tests := []struct {
		name string
		req  usecase.CreateTransactionRequest
		want error
	}{
		{
			name: "zero amount",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 0},
			want: errs.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "purchase", CoinAmount: -5},
			want: errs.ErrInvalidAmount,
		},
		{
			name: "amount above maximum",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "purchase", CoinAmount: 10_000_001},
			want: errs.ErrInvalidAmount,
		},
		{
			name: "unknown type",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "gift", CoinAmount: 10},
			want: errs.ErrUnknownTransactionType,
		},
		{
			name: "missing user",
			req:  usecase.CreateTransactionRequest{Type: "purchase", CoinAmount: 10},
			want: errs.ErrInvalidRequest,
		},
		{
			name: "unknown content type",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 10, ContentType: "podcast", ContentID: "c-1"},
			want: errs.ErrInvalidRequest,
		},
		{
			name: "content type without id",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 10, ContentType: "video"},
			want: errs.ErrInvalidRequest,
		},
		{
			name: "async earn",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "earn", CoinAmount: 10, ContentType: "video", ContentID: "v-1", Async: true},
			want: errs.ErrInvalidRequest,
		},
		{
			name: "refundOf on a purchase",
			req:  usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "purchase", CoinAmount: 10, RefundOf: "0b9a4f7e-8f7d-4c35-9a39-5a8d5b1f2c11"},
			want: errs.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.ledger.CreateTransaction(ctx, tt.req)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int64(100), f.spender(t, "viewer-1").CoinBalance())
		})
	}
}

func TestService_CreateTransaction_Spend(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance and spend counter", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 100)

		result, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID:      "viewer-1",
			Type:        "spend",
			CoinAmount:  30,
			ContentType: "video",
			ContentID:   "v-42",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(70), result.NewBalance)
		assert.Equal(t, entity.ContentVideo, result.Transaction.ContentType)

		acc := f.spender(t, "viewer-1")
		assert.Equal(t, int64(70), acc.CoinBalance())
		assert.Equal(t, int64(30), acc.TotalCoinsSpent)
		assert.Equal(t, acc.TotalCoinsPurchased-acc.TotalCoinsSpent, acc.CoinBalance())
	})

	t.Run("insufficient balance reports the shortfall and changes nothing", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 40)

		_, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 60})

		var ibe *errs.InsufficientBalanceError
		require.ErrorAs(t, err, &ibe)
		assert.Equal(t, int64(60), ibe.Required)
		assert.Equal(t, int64(40), ibe.Available)
		assert.Equal(t, int64(20), ibe.Shortfall())

		page, total, err := f.uow.GetLedgerRepository(ctx).List(ctx, persistence.HistoryFilter{UserID: "viewer-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, entity.TypePurchase, page[0].Type)
		assert.Equal(t, int64(40), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("two concurrent spends of 60 against 100 apply once", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 100)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			rejected  int
		)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 60})
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					succeeded++
					return
				}
				assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
				rejected++
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, rejected)
		assert.Equal(t, int64(40), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("balance never goes negative under load", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 500)

		var wg sync.WaitGroup
		for i := 0; i < 40; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 30})
			}()
		}
		wg.Wait()

		acc := f.spender(t, "viewer-1")
		assert.Equal(t, int64(20), acc.CoinBalance())
		assert.Equal(t, int64(480), acc.TotalCoinsSpent)
	})
}

func TestService_CreateTransaction_Refund(t *testing.T) {
	ctx := context.Background()

	spendThenRefund := func(t *testing.T, f *fixture, refund int64) (*usecase.TransactionResult, error) {
		t.Helper()
		f.openSpender(t, "viewer-1", 100)
		spend, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 50})
		require.NoError(t, err)

		return f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID:     "viewer-1",
			Type:       "refund",
			CoinAmount: refund,
			RefundOf:   spend.Transaction.ID,
		})
	}

	t.Run("restore policy credits balance and keeps counters", func(t *testing.T) {
		f := newFixture(t, entity.RefundRestoreBalance)

		result, err := spendThenRefund(t, f, 50)

		require.NoError(t, err)
		assert.Equal(t, int64(100), result.NewBalance)
		acc := f.spender(t, "viewer-1")
		assert.Equal(t, int64(50), acc.TotalCoinsSpent)
		assert.Equal(t, int64(100), acc.TotalCoinsPurchased)

		original, err := f.uow.GetLedgerRepository(ctx).GetByID(ctx, result.Transaction.RefundOf)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusRefunded, original.Status)
	})

	t.Run("reverse policy also decrements spend counter", func(t *testing.T) {
		f := newFixture(t, entity.RefundReverseSpend)

		result, err := spendThenRefund(t, f, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(70), result.NewBalance)
		assert.Equal(t, int64(30), f.spender(t, "viewer-1").TotalCoinsSpent)
	})

	t.Run("reverse policy requires the refunded spend", func(t *testing.T) {
		f := newFixture(t, entity.RefundReverseSpend)
		f.openSpender(t, "viewer-1", 0)
		_, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "purchase", CoinAmount: 100})
		require.NoError(t, err)

		_, err = f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "refund", CoinAmount: 30})

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Equal(t, int64(100), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("reverse policy reconciles after refunds and later spends", func(t *testing.T) {
		f := newFixture(t, entity.RefundReverseSpend)
		_, err := spendThenRefund(t, f, 30)
		require.NoError(t, err)
		_, err = f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "spend", CoinAmount: 50})
		require.NoError(t, err)

		acc := f.spender(t, "viewer-1")
		totals, err := f.uow.GetLedgerRepository(ctx).Totals(ctx, "viewer-1")
		require.NoError(t, err)
		report := entity.Reconcile("viewer-1", totals, acc, nil, entity.RefundReverseSpend, acc.UpdatedAt)

		assert.Equal(t, int64(30), acc.CoinBalance())
		assert.Equal(t, int64(70), acc.TotalCoinsSpent)
		assert.False(t, report.HasDrift(), "drifts: %v", report.Drifts)
	})

	t.Run("refund above the original spend is rejected", func(t *testing.T) {
		f := newFixture(t, "")

		_, err := spendThenRefund(t, f, 51)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Equal(t, int64(50), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("partial refunds cannot add up past the original", func(t *testing.T) {
		f := newFixture(t, "")
		first, err := spendThenRefund(t, f, 30)
		require.NoError(t, err)

		_, err = f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID: "viewer-1", Type: "refund", CoinAmount: 30, RefundOf: first.Transaction.RefundOf,
		})
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID: "viewer-1", Type: "refund", CoinAmount: 20, RefundOf: first.Transaction.RefundOf,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(100), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("refund of a purchase entry is rejected", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 0)
		purchase, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "viewer-1", Type: "purchase", CoinAmount: 10})
		require.NoError(t, err)

		_, err = f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID: "viewer-1", Type: "refund", CoinAmount: 10, RefundOf: purchase.Transaction.ID,
		})

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestService_CreateTransaction_Delegation(t *testing.T) {
	ctx := context.Background()

	t.Run("earn opens and credits the earner account", func(t *testing.T) {
		f := newFixture(t, "")

		result, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID: "creator-1", Type: "earn", CoinAmount: 2500, ContentType: "series", ContentID: "s-1",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2500), result.NewBalance)
		acc := f.earner(t, "creator-1")
		assert.Equal(t, int64(2500), acc.TotalCoinsEarned)
		assert.Equal(t, entity.TypeEarn, result.Transaction.Type)
	})

	t.Run("withdraw settles against the earner account", func(t *testing.T) {
		f := newFixture(t, "")
		_, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID: "creator-1", Type: "earn", CoinAmount: 3000, ContentType: "video", ContentID: "v-1",
		})
		require.NoError(t, err)

		result, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{UserID: "creator-1", Type: "withdraw", CoinAmount: 2000})

		require.NoError(t, err)
		assert.Equal(t, int64(1000), result.NewBalance)
		assert.Equal(t, "200.00", result.Transaction.RupeeAmount.Decimal.StringFixed(2))
	})
}

func TestService_Mutate(t *testing.T) {
	ctx := context.Background()

	t.Run("standalone call is rejected", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 50)

		_, err := f.ledger.Mutate(ctx, "viewer-1", entity.OpAdd, 25)

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Equal(t, int64(50), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("joins the unit recording the entry", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 50)

		var balance int64
		err := f.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			if balance, err = f.ledger.Mutate(txCtx, "viewer-1", entity.OpAdd, 25); err != nil {
				return err
			}
			_, err = f.ledger.Mutate(txCtx, "viewer-1", entity.OpAdd, 0)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			_, err = f.ledger.Mutate(txCtx, "ghost", entity.OpAdd, 1)
			assert.ErrorIs(t, err, errs.ErrAccountNotFound)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, int64(75), balance)
		assert.Equal(t, int64(75), f.spender(t, "viewer-1").CoinBalance())
	})

	t.Run("shortfall rolls the unit back", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 50)

		err := f.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
			if _, err := f.ledger.Mutate(txCtx, "viewer-1", entity.OpAdd, 25); err != nil {
				return err
			}
			_, err := f.ledger.Mutate(txCtx, "viewer-1", entity.OpSubtract, 100)
			return err
		})

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(50), f.spender(t, "viewer-1").CoinBalance())
	})
}
