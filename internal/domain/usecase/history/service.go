package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

// Paging and worker defaults
const (
	DefaultLimit    = 20
	DefaultMaxLimit = 100
	DefaultWorkers  = 4
	DefaultPageSize = 500
)

// Config tunes history paging and reconciliation sweeps
type Config struct {
	DefaultLimit int
	MaxLimit     int
	Workers      int
	PageSize     int
	RefundPolicy entity.RefundPolicy
}

// Service answers read-only queries over balances and the ledger
type Service struct {
	uow          persistence.UnitOfWork
	converter    *entity.CoinConverter
	cfg          Config
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.HistoryUseCase = (*Service)(nil)

// NewService creates a new history service
func NewService(
	uow persistence.UnitOfWork,
	converter *entity.CoinConverter,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultMaxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RefundPolicy == "" {
		cfg.RefundPolicy = entity.RefundRestoreBalance
	}
	return &Service{
		uow:          uow,
		converter:    converter,
		cfg:          cfg,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetHistory returns one newest-first page of an account's entries
func (s *Service) GetHistory(ctx context.Context, userID string, query usecase.HistoryQuery) (*usecase.HistoryPage, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalidRequest)
	}

	filter := persistence.HistoryFilter{
		UserID: userID,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.DefaultLimit
	}
	if filter.Limit > s.cfg.MaxLimit {
		filter.Limit = s.cfg.MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if query.TransactionType != "" {
		txType, err := entity.ParseTransactionType(query.TransactionType)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown transaction type filter %q", errs.ErrInvalidRequest, query.TransactionType)
		}
		filter.Type = txType
	}
	if query.Status != "" {
		status, err := entity.ParseEntryStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	entries, total, err := s.uow.GetLedgerRepository(ctx).List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &usecase.HistoryPage{Entries: entries, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// GetBalance returns the stored spender counters
func (s *Service) GetBalance(ctx context.Context, userID string) (*entity.SpenderBalance, error) {
	acc, err := s.uow.GetAccountRepository(ctx).GetSpender(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance := entity.SpenderToBalance(acc)
	return &balance, nil
}

// GetEarnings returns the stored earner counters with the rupee value of the balance
func (s *Service) GetEarnings(ctx context.Context, creatorID string) (*entity.EarnerBalance, error) {
	acc, err := s.uow.GetAccountRepository(ctx).GetEarner(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	balance := entity.EarnerToBalance(acc, s.converter)
	return &balance, nil
}

// Reconcile recomputes one user's positions from the ledger and reports drift
func (s *Service) Reconcile(ctx context.Context, userID string) (*entity.ReconciliationReport, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalidRequest)
	}

	accounts := s.uow.GetAccountRepository(ctx)

	spender, err := accounts.GetSpender(ctx, userID)
	if err != nil && !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}
	earner, err := accounts.GetEarner(ctx, userID)
	if err != nil && !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}

	totals, err := s.uow.GetLedgerRepository(ctx).Totals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if spender == nil && earner == nil && totals.Entries == 0 {
		return nil, errs.ErrAccountNotFound
	}

	report := entity.Reconcile(userID, totals, spender, earner, s.cfg.RefundPolicy, s.timeProvider.Now())
	for _, drift := range report.Drifts {
		s.logger.Warn("Balance drift detected", map[string]any{
			"user_id":    userID,
			"account":    drift.Account,
			"field":      drift.Field,
			"stored":     drift.Stored,
			"derived":    drift.Derived,
			"difference": drift.Difference(),
		})
	}
	return report, nil
}

// ReconcileAll pages through every account and reconciles each page on a bounded pool.
// Only reports with drift are returned.
func (s *Service) ReconcileAll(ctx context.Context) ([]*entity.ReconciliationReport, error) {
	start := s.timeProvider.Now()
	pool := pond.NewResultPool[*entity.ReconciliationReport](s.cfg.Workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	var (
		drifted []*entity.ReconciliationReport
		checked int
		afterID string
	)
	for {
		ids, err := s.uow.GetAccountRepository(ctx).ListAccountIDs(ctx, afterID, s.cfg.PageSize)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			break
		}

		group := pool.NewGroup()
		for _, id := range ids {
			id := id
			group.SubmitErr(func() (*entity.ReconciliationReport, error) {
				return s.Reconcile(ctx, id)
			})
		}
		reports, err := group.Wait()
		if err != nil {
			return nil, fmt.Errorf("reconciliation stopped after %d accounts: %w", checked, err)
		}
		for _, report := range reports {
			if report != nil && report.HasDrift() {
				drifted = append(drifted, report)
			}
		}

		checked += len(ids)
		afterID = ids[len(ids)-1]
		if len(ids) < s.cfg.PageSize {
			break
		}
	}

	s.logger.Info("Reconciliation sweep finished", map[string]any{
		"accounts_checked": checked,
		"accounts_drifted": len(drifted),
		"duration_ms":      s.timeProvider.Since(start).Std().Milliseconds(),
	})
	return drifted, nil
}
