package ledger

import (
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/notify"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/validation"
)

// Config holds the ledger rules that are platform decisions rather than code
type Config struct {
	MaxCoinAmount int64
	RefundPolicy  entity.RefundPolicy
}

// Service is the balance mutator and transaction dispatcher for spender accounts
type Service struct {
	uow          persistence.UnitOfWork
	earnings     usecase.EarningsUseCase
	withdrawals  usecase.WithdrawalUseCase
	validator    *validation.Validator
	idempotency  *IdempotencyHandler
	publisher    *notify.Publisher
	refundPolicy entity.RefundPolicy
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.LedgerUseCase = (*Service)(nil)

// NewService creates a new ledger service
func NewService(
	uow persistence.UnitOfWork,
	earnings usecase.EarningsUseCase,
	withdrawals usecase.WithdrawalUseCase,
	notifier coreport.BalanceNotifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	policy := cfg.RefundPolicy
	if policy == "" {
		policy = entity.RefundRestoreBalance
	}
	return &Service{
		uow:          uow,
		earnings:     earnings,
		withdrawals:  withdrawals,
		validator:    validation.NewValidator(cfg.MaxCoinAmount),
		idempotency:  NewIdempotencyHandler(),
		publisher:    notify.NewPublisher(notifier, logger),
		refundPolicy: policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RefundPolicy returns the configured refund counter semantics
func (s *Service) RefundPolicy() entity.RefundPolicy {
	return s.refundPolicy
}
