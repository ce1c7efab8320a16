package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/logger"
	coremocks "github.com/amirhossein-jamali/coin-ledger/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/coin-ledger/mocks/port/persistence"
)

func TestReconcileWithMockedStore(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *persistencemocks.MockAccountRepository, *persistencemocks.MockLedgerRepository) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Maybe()
		mockTime.On("Since", mock.Anything).Return(coreport.Duration(0)).Maybe()

		accounts := persistencemocks.NewMockAccountRepository(t)
		entries := persistencemocks.NewMockLedgerRepository(t)
		uow := persistencemocks.NewMockUnitOfWork(t)
		uow.EXPECT().GetAccountRepository(mock.Anything).Return(accounts).Maybe()
		uow.EXPECT().GetLedgerRepository(mock.Anything).Return(entries).Maybe()

		converter, err := entity.NewCoinConverter(10)
		require.NoError(t, err)
		return NewService(uow, converter, mockTime, logger.NewNoopLogger(), Config{PageSize: 2, Workers: 2}), accounts, entries
	}

	t.Run("totals failure aborts the report", func(t *testing.T) {
		svc, accounts, entries := setup(t)
		spender := entity.RestoreSpenderAccount("viewer-1", 10, 10, 0, 1, fixedTime, fixedTime)
		accounts.EXPECT().GetSpender(mock.Anything, "viewer-1").Return(spender, nil)
		accounts.EXPECT().GetEarner(mock.Anything, "viewer-1").Return(nil, errs.ErrAccountNotFound)
		entries.EXPECT().Totals(mock.Anything, "viewer-1").Return(entity.LedgerTotals{}, errs.ErrDatabaseConnection)

		_, err := svc.Reconcile(ctx, "viewer-1")
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("listing failure stops the sweep", func(t *testing.T) {
		svc, accounts, _ := setup(t)
		boom := errors.New("connection reset")
		accounts.EXPECT().ListAccountIDs(mock.Anything, "", 2).Return(nil, boom)

		_, err := svc.ReconcileAll(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("sweep pages by the last id seen", func(t *testing.T) {
		svc, accounts, entries := setup(t)
		accounts.EXPECT().ListAccountIDs(mock.Anything, "", 2).Return([]string{"a", "b"}, nil).Once()
		accounts.EXPECT().ListAccountIDs(mock.Anything, "b", 2).Return([]string{"c"}, nil).Once()

		for _, id := range []string{"a", "b", "c"} {
			stored := int64(0)
			if id == "b" {
				stored = 5
			}
			accounts.EXPECT().GetSpender(mock.Anything, id).
				Return(entity.RestoreSpenderAccount(id, stored, stored, 0, 1, fixedTime, fixedTime), nil)
			accounts.EXPECT().GetEarner(mock.Anything, id).Return(nil, errs.ErrAccountNotFound)
			entries.EXPECT().Totals(mock.Anything, id).Return(entity.LedgerTotals{}, nil)
		}

		drifted, err := svc.ReconcileAll(ctx)
		require.NoError(t, err)
		require.Len(t, drifted, 1)
		assert.Equal(t, "b", drifted[0].UserID)
	})
}
