package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/logger"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var spenderColumns = []string{"user_id", "coin_balance", "total_coins_purchased", "total_coins_spent", "version", "created_at", "updated_at"}

func TestAccountRepository_GetSpenderForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`SELECT \* FROM "spender_accounts" WHERE user_id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(spenderColumns).AddRow("viewer-1", 150, 200, 50, 3, fixedTime, fixedTime))

	acc, err := repo.GetSpenderForUpdate(context.Background(), "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(150), acc.CoinBalance())
	assert.Equal(t, int64(200), acc.TotalCoinsPurchased)
	assert.Equal(t, int64(50), acc.TotalCoinsSpent)
	assert.Equal(t, int64(3), acc.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetSpenderNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`SELECT \* FROM "spender_accounts" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(spenderColumns))

	_, err := repo.GetSpender(context.Background(), "ghost")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_SaveSpender(t *testing.T) {
	t.Run("version matches", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, logger.NewNoopLogger())
		acc := entity.RestoreSpenderAccount("viewer-1", 90, 200, 110, 3, fixedTime, fixedTime)

		mock.ExpectExec(`UPDATE "spender_accounts" SET .* WHERE user_id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveSpender(context.Background(), acc))
		assert.Equal(t, int64(4), acc.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row changed since read", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, logger.NewNoopLogger())
		acc := entity.RestoreSpenderAccount("viewer-1", 90, 200, 110, 3, fixedTime, fixedTime)

		mock.ExpectExec(`UPDATE "spender_accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveSpender(context.Background(), acc)
		assert.ErrorIs(t, err, errs.ErrConcurrentUpdate)
		assert.Equal(t, int64(3), acc.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("balance check violated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, logger.NewNoopLogger())
		acc := entity.RestoreSpenderAccount("viewer-1", 0, 0, 0, 0, fixedTime, fixedTime)

		mock.ExpectExec(`UPDATE "spender_accounts" SET`).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "chk_spender_accounts_balance_non_negative"})

		err := repo.SaveSpender(context.Background(), acc)
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_CreateEarnerDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.NewNoopLogger())
	acc := entity.RestoreEarnerAccount("creator-1", 0, 0, 0, 0, fixedTime, fixedTime)

	mock.ExpectExec(`INSERT INTO "earner_accounts"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "earner_accounts_pkey"})

	err := repo.CreateEarner(context.Background(), acc)
	assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_LockConflictIsRetryable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`FROM "earner_accounts"`).
		WillReturnError(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})

	_, err := repo.GetEarnerForUpdate(context.Background(), "creator-1")
	assert.True(t, errs.IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_ListAccountIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`SELECT id FROM \(.*UNION.*\) AS accounts WHERE id > \$1 ORDER BY id LIMIT \$2`).
		WithArgs("alice", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bob").AddRow("carol"))

	ids, err := repo.ListAccountIDs(context.Background(), "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_CreateDuplicate(t *testing.T) {
	purchase := &entity.LedgerEntry{
		ID: "e1", UserID: "viewer-1", Type: entity.TypePurchase, CoinAmount: 100,
		PaymentID: "pay-1", Status: entity.StatusCompleted, CreatedAt: fixedTime, UpdatedAt: fixedTime,
	}

	tests := []struct {
		name       string
		entry      *entity.LedgerEntry
		constraint string
		wantKey    string
	}{
		{"payment index", purchase, "idx_ledger_entries_active_payment", "pay-1"},
		{"event index", &entity.LedgerEntry{
			ID: "e2", UserID: "viewer-1", Type: entity.TypeSpend, CoinAmount: 10,
			EventID: "evt-1", Status: entity.StatusCompleted, CreatedAt: fixedTime, UpdatedAt: fixedTime,
		}, "idx_ledger_entries_event", "evt-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewLedgerRepository(db, logger.NewNoopLogger())

			mock.ExpectExec(`INSERT INTO "ledger_entries"`).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			err := repo.Create(context.Background(), tt.entry)
			assert.ErrorIs(t, err, errs.ErrDuplicatePayment)

			var dup *errs.DuplicatePaymentError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, tt.wantKey, dup.PaymentID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLedgerRepository_FindActiveByPaymentID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE transaction_type = \$1 AND payment_id = \$2 AND status IN \(\$3,\$4\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	found, err := repo.FindActiveByPaymentID(context.Background(), entity.TypePurchase, "pay-9")
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "ledger_entries" WHERE user_id = \$1 AND transaction_type = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE user_id = \$1 AND transaction_type = \$2 ORDER BY created_at DESC,id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "transaction_type", "coin_amount", "status", "created_at", "updated_at"}).
			AddRow("e2", "viewer-1", "spend", 30, "completed", fixedTime.Add(time.Minute), fixedTime).
			AddRow("e1", "viewer-1", "spend", 10, "refunded", fixedTime, fixedTime))

	entries, total, err := repo.List(context.Background(), persistence.HistoryFilter{
		UserID: "viewer-1", Type: entity.TypeSpend, Limit: 2, Offset: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, entity.StatusRefunded, entries[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_Totals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`SELECT transaction_type, COALESCE\(SUM\(coin_amount\), 0\) AS total, COUNT\(\*\) AS entries FROM "ledger_entries" WHERE user_id = \$1 AND status IN \(\$2,\$3\) GROUP BY .?transaction_type`).
		WithArgs("viewer-1", "completed", "refunded").
		WillReturnRows(sqlmock.NewRows([]string{"transaction_type", "total", "entries"}).
			AddRow("purchase", 500, 2).
			AddRow("spend", 120, 3).
			AddRow("refund", 20, 1))

	totals, err := repo.Totals(context.Background(), "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), totals.Purchased)
	assert.Equal(t, int64(120), totals.Spent)
	assert.Equal(t, int64(20), totals.Refunded)
	assert.Equal(t, int64(6), totals.Entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorClassifier_Classify(t *testing.T) {
	c := NewErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, DuplicateKeyError},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, LockError},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, LockError},
		{"check violation", &pgconn.PgError{Code: "23514"}, ConstraintError},
		{"connection failure", &pgconn.PgError{Code: "08006"}, ConnectionError},
		{"query canceled", &pgconn.PgError{Code: "57014"}, TransientError},
		{"message fallback", errors.New("dial tcp: connection refused"), ConnectionError},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}
