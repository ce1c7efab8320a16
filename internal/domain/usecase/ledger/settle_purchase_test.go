package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

// failingEarnings rejects every credit
type failingEarnings struct {
	err error
}

func (f failingEarnings) RecordEarning(context.Context, usecase.EarningRequest) (*usecase.EarningResult, error) {
	return nil, f.err
}

func (f failingEarnings) Credit(context.Context, usecase.EarningRequest) (*usecase.EarningResult, error) {
	return nil, f.err
}

func TestService_SettleContentPurchase(t *testing.T) {
	ctx := context.Background()
	purchase := usecase.ContentPurchaseRequest{
		EventID:     "evt-1",
		ViewerID:    "viewer-1",
		CreatorID:   "creator-1",
		CoinAmount:  40,
		ContentType: "video",
		ContentID:   "v-9",
	}

	t.Run("debits the viewer and credits the creator together", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 100)

		result, err := f.ledger.SettleContentPurchase(ctx, purchase)

		require.NoError(t, err)
		assert.False(t, result.Duplicate)
		assert.Equal(t, int64(60), result.NewViewerBalance)
		assert.Equal(t, int64(40), result.NewEarnerBalance)
		assert.Equal(t, "evt-1", result.Spend.EventID)
		assert.Equal(t, "evt-1", result.Earn.EventID)
		assert.Equal(t, int64(40), f.earner(t, "creator-1").TotalCoinsEarned)

		changes := f.notifier.published()
		require.Len(t, changes, 3)
		assert.Equal(t, coreport.AccountKindSpender, changes[1].Kind)
		assert.Equal(t, int64(-40), changes[1].Delta)
		assert.Equal(t, coreport.AccountKindEarner, changes[2].Kind)
	})

	t.Run("replayed event returns the stored pair", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 100)

		first, err := f.ledger.SettleContentPurchase(ctx, purchase)
		require.NoError(t, err)
		second, err := f.ledger.SettleContentPurchase(ctx, purchase)
		require.NoError(t, err)

		assert.True(t, second.Duplicate)
		assert.Equal(t, first.Spend.ID, second.Spend.ID)
		assert.Equal(t, first.Earn.ID, second.Earn.ID)
		assert.Equal(t, int64(60), second.NewViewerBalance)
		assert.Equal(t, int64(40), second.NewEarnerBalance)
	})

	t.Run("concurrent deliveries settle once", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 100)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.ledger.SettleContentPurchase(ctx, purchase)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(60), f.spender(t, "viewer-1").CoinBalance())
		assert.Equal(t, int64(40), f.earner(t, "creator-1").CoinBalance())
	})

	t.Run("insufficient viewer balance credits nobody", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 10)

		_, err := f.ledger.SettleContentPurchase(ctx, purchase)

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		_, err = f.uow.GetAccountRepository(ctx).GetEarner(ctx, "creator-1")
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})

	t.Run("failed earning rolls back the spend", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 100)
		f.ledger.earnings = failingEarnings{err: errs.ErrDatabaseConnection}

		_, err := f.ledger.SettleContentPurchase(ctx, purchase)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		acc := f.spender(t, "viewer-1")
		assert.Equal(t, int64(100), acc.CoinBalance())
		assert.Equal(t, int64(0), acc.TotalCoinsSpent)
		spend, _, err := f.ledger.idempotency.CheckEvent(ctx, f.uow.GetLedgerRepository(ctx), "evt-1")
		require.NoError(t, err)
		assert.Nil(t, spend)
	})

	t.Run("invalid requests", func(t *testing.T) {
		f := newFixture(t, "")
		missingEvent := purchase
		missingEvent.EventID = ""
		zero := purchase
		zero.CoinAmount = 0

		_, err := f.ledger.SettleContentPurchase(ctx, missingEvent)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		_, err = f.ledger.SettleContentPurchase(ctx, zero)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("conservation across viewer and creator", func(t *testing.T) {
		f := newFixture(t, "")
		f.openSpender(t, "viewer-1", 100)

		for _, evt := range []string{"evt-a", "evt-b"} {
			req := purchase
			req.EventID = evt
			_, err := f.ledger.SettleContentPurchase(ctx, req)
			require.NoError(t, err)
		}

		viewer := f.spender(t, "viewer-1")
		creator := f.earner(t, "creator-1")
		assert.Equal(t, viewer.TotalCoinsPurchased-viewer.TotalCoinsSpent, viewer.CoinBalance())
		assert.Equal(t, viewer.TotalCoinsSpent, creator.TotalCoinsEarned)
		assert.Equal(t, int64(80), creator.CoinBalance())
	})
}
