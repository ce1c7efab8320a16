package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/earnings"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/withdrawal"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/memory"
	coremocks "github.com/amirhossein-jamali/coin-ledger/mocks/port/core"
)

// recordingNotifier keeps every published change
type recordingNotifier struct {
	mu      sync.Mutex
	changes []coreport.BalanceChange
}

func (n *recordingNotifier) Publish(_ context.Context, change coreport.BalanceChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return nil
}

func (n *recordingNotifier) published() []coreport.BalanceChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]coreport.BalanceChange(nil), n.changes...)
}

type fixture struct {
	ledger   *Service
	uow      *memory.UnitOfWork
	notifier *recordingNotifier
	time     *coremocks.MockTimeProvider
}

func newFixture(t *testing.T, policy entity.RefundPolicy) *fixture {
	t.Helper()

	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	log := logger.NewNoopLogger()
	uow := memory.NewUnitOfWork(memory.NewStore(), 0, mockTime, log)
	notifier := &recordingNotifier{}

	converter, err := entity.NewCoinConverter(10)
	require.NoError(t, err)

	earn := earnings.NewService(uow, notifier, mockTime, log, 0)
	withdraw := withdrawal.NewService(uow, converter, notifier, mockTime, log, withdrawal.Config{MinWithdrawalCoins: 2000})
	svc := NewService(uow, earn, withdraw, notifier, mockTime, log, Config{RefundPolicy: policy})

	return &fixture{ledger: svc, uow: uow, notifier: notifier, time: mockTime}
}

// openSpender creates a spender row holding balance purchased coins
func (f *fixture) openSpender(t *testing.T, userID string, balance int64) {
	t.Helper()
	ctx := context.Background()

	acc, err := entity.NewSpenderAccount(userID, f.time)
	require.NoError(t, err)
	require.NoError(t, f.uow.GetAccountRepository(ctx).CreateSpender(ctx, acc))

	if balance > 0 {
		_, err := f.ledger.CreateTransaction(ctx, usecase.CreateTransactionRequest{
			UserID:     userID,
			Type:       string(entity.TypePurchase),
			CoinAmount: balance,
		})
		require.NoError(t, err)
	}
}

func (f *fixture) spender(t *testing.T, userID string) *entity.SpenderAccount {
	t.Helper()
	acc, err := f.uow.GetAccountRepository(context.Background()).GetSpender(context.Background(), userID)
	require.NoError(t, err)
	return acc
}

func (f *fixture) earner(t *testing.T, creatorID string) *entity.EarnerAccount {
	t.Helper()
	acc, err := f.uow.GetAccountRepository(context.Background()).GetEarner(context.Background(), creatorID)
	require.NoError(t, err)
	return acc
}
