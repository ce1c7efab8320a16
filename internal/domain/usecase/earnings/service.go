package earnings

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/notify"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/validation"
)

// Service credits creators for content sales. It is the only path that grows an earner balance.
type Service struct {
	uow          persistence.UnitOfWork
	validator    *validation.Validator
	publisher    *notify.Publisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.EarningsUseCase = (*Service)(nil)

// NewService creates a new earnings service
func NewService(
	uow persistence.UnitOfWork,
	notifier coreport.BalanceNotifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	maxCoinAmount int64,
) *Service {
	return &Service{
		uow:          uow,
		validator:    validation.NewValidator(maxCoinAmount),
		publisher:    notify.NewPublisher(notifier, logger),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RecordEarning credits a creator in its own unit and notifies subscribers after commit
func (s *Service) RecordEarning(ctx context.Context, req usecase.EarningRequest) (*usecase.EarningResult, error) {
	var result *usecase.EarningResult
	err := s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.Credit(txCtx, req)
		return err
	})
	if err != nil {
		s.logFailure(req, err)
		return nil, err
	}

	s.publisher.Publish(ctx, result.Transaction.BalanceChange(result.NewEarnerBalance))
	return result, nil
}

// Credit inserts a completed earn entry and grows the earner balance by the same amount.
// The earner row is opened on the creator's first earning. Failures are returned
// unlogged; the caller owning the unit logs them.
func (s *Service) Credit(ctx context.Context, req usecase.EarningRequest) (*usecase.EarningResult, error) {
	if err := s.validator.Amount(req.CoinAmount); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	var result *usecase.EarningResult
	err := s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)

		acc, err := s.lockOrOpen(txCtx, accounts, req.CreatorID)
		if err != nil {
			return err
		}

		entry, err := entity.NewLedgerEntry(req.CreatorID, entity.TypeEarn, req.CoinAmount, s.timeProvider,
			entity.WithContent(entity.ContentType(req.ContentType), req.ContentID),
			entity.WithEventID(req.EventID),
			entity.WithDescription(req.Description),
		)
		if err != nil {
			return err
		}
		if err := s.uow.GetLedgerRepository(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		balance, err := acc.ApplyEarning(req.CoinAmount, s.timeProvider)
		if err != nil {
			return err
		}
		if err := accounts.SaveEarner(txCtx, acc); err != nil {
			return err
		}

		result = &usecase.EarningResult{Transaction: entry, NewEarnerBalance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creator earning recorded", map[string]any{
		"creator_id":         req.CreatorID,
		"entry_id":           result.Transaction.ID,
		"coin_amount":        req.CoinAmount,
		"content_type":       req.ContentType,
		"content_id":         req.ContentID,
		"event_id":           req.EventID,
		"new_earner_balance": result.NewEarnerBalance,
	})
	return result, nil
}

func (s *Service) logFailure(req usecase.EarningRequest, err error) {
	fields := errs.LogFields(err)
	fields["creator_id"] = req.CreatorID
	fields["coin_amount"] = req.CoinAmount
	if errs.IsBusinessError(err) {
		s.logger.Info("Earning rejected", fields)
		return
	}
	s.logger.Error("Failed to record earning", fields)
}

// lockOrOpen locks the creator's earner row, inserting it first when missing.
// A concurrent first earning surfaces as ErrConcurrentUpdate so the unit is retried.
func (s *Service) lockOrOpen(ctx context.Context, accounts persistence.AccountRepository, creatorID string) (*entity.EarnerAccount, error) {
	acc, err := accounts.GetEarnerForUpdate(ctx, creatorID)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}

	acc, err = entity.NewEarnerAccount(creatorID, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := accounts.CreateEarner(ctx, acc); err != nil {
		if errors.Is(err, errs.ErrDuplicateAccount) {
			return nil, errs.ErrConcurrentUpdate
		}
		return nil, err
	}

	s.logger.Info("Earner account opened", map[string]any{"creator_id": creatorID})
	return accounts.GetEarnerForUpdate(ctx, creatorID)
}
