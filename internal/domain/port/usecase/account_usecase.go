package usecase

import (
	"context"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// AccountUseCase opens balance rows; opening an existing account returns it unchanged
type AccountUseCase interface {
	OpenSpenderAccount(ctx context.Context, userID string) (*entity.SpenderAccount, error)
	OpenEarnerAccount(ctx context.Context, creatorID string) (*entity.EarnerAccount, error)
	AccountExists(ctx context.Context, userID string) (bool, error)
}
