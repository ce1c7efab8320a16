package earnings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/logger"
	coremocks "github.com/amirhossein-jamali/coin-ledger/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/coin-ledger/mocks/port/persistence"
)

func TestService_EarningLogging(t *testing.T) {
	ctx := context.Background()
	req := usecase.EarningRequest{CreatorID: "creator-1", CoinAmount: 120, ContentType: "video", ContentID: "v-1"}

	setup := func(t *testing.T) (*Service, *observer.ObservedLogs) {
		t.Helper()
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)).Maybe()

		accounts := persistencemocks.NewMockAccountRepository(t)
		accounts.EXPECT().GetEarnerForUpdate(mock.Anything, "creator-1").Return(nil, errs.ErrDatabaseConnection)
		uow := persistencemocks.NewMockUnitOfWork(t)
		uow.EXPECT().RunInTransaction(mock.Anything, mock.Anything).
			RunAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) })
		uow.EXPECT().GetAccountRepository(mock.Anything).Return(accounts)

		zc, logs := observer.New(zapcore.DebugLevel)
		log := logger.NewZapLoggerWithCore(zc, zap.NewAtomicLevelAt(zap.DebugLevel))
		return NewService(uow, nil, mockTime, log, 0), logs
	}

	t.Run("credit leaves logging to the unit owner", func(t *testing.T) {
		svc, logs := setup(t)

		_, err := svc.Credit(ctx, req)

		require.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("record earning logs a store failure once as an error", func(t *testing.T) {
		svc, logs := setup(t)

		_, err := svc.RecordEarning(ctx, req)

		require.ErrorIs(t, err, errs.ErrDatabaseConnection)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
		assert.Equal(t, "creator-1", logs.All()[0].ContextMap()["creator_id"])
	})
}
