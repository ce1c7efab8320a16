package account

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

// Service opens spender and earner balance rows
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.AccountUseCase = (*Service)(nil)

// NewService creates a new account service
func NewService(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{uow: uow, timeProvider: timeProvider, logger: logger}
}

// OpenSpenderAccount creates the user's spender row, or returns the existing one
func (s *Service) OpenSpenderAccount(ctx context.Context, userID string) (*entity.SpenderAccount, error) {
	accounts := s.uow.GetAccountRepository(ctx)

	existing, err := accounts.GetSpender(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}

	acc, err := entity.NewSpenderAccount(userID, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := accounts.CreateSpender(ctx, acc); err != nil {
		if errors.Is(err, errs.ErrDuplicateAccount) {
			return accounts.GetSpender(ctx, userID)
		}
		return nil, err
	}

	s.logger.Info("Spender account opened", map[string]any{"user_id": userID})
	return acc, nil
}

// OpenEarnerAccount creates the creator's earner row, or returns the existing one
func (s *Service) OpenEarnerAccount(ctx context.Context, creatorID string) (*entity.EarnerAccount, error) {
	accounts := s.uow.GetAccountRepository(ctx)

	existing, err := accounts.GetEarner(ctx, creatorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, err
	}

	acc, err := entity.NewEarnerAccount(creatorID, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := accounts.CreateEarner(ctx, acc); err != nil {
		if errors.Is(err, errs.ErrDuplicateAccount) {
			return accounts.GetEarner(ctx, creatorID)
		}
		return nil, err
	}

	s.logger.Info("Earner account opened", map[string]any{"creator_id": creatorID})
	return acc, nil
}

// AccountExists checks if the user holds a spender account
func (s *Service) AccountExists(ctx context.Context, userID string) (bool, error) {
	_, err := s.uow.GetAccountRepository(ctx).GetSpender(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
