package notify

import (
	"context"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// Publisher forwards committed balance changes to a notifier.
// Failures are logged and never returned: the ledger write already committed.
type Publisher struct {
	notifier coreport.BalanceNotifier
	logger   coreport.Logger
}

// NewPublisher creates a publisher; a nil notifier disables publishing
func NewPublisher(notifier coreport.BalanceNotifier, logger coreport.Logger) *Publisher {
	return &Publisher{notifier: notifier, logger: logger}
}

// Publish sends each change in order
func (p *Publisher) Publish(ctx context.Context, changes ...coreport.BalanceChange) {
	if p == nil || p.notifier == nil {
		return
	}
	for _, change := range changes {
		if err := p.notifier.Publish(ctx, change); err != nil {
			p.logger.Warn("Failed to publish balance change", map[string]any{
				"account_id": change.AccountID,
				"kind":       change.Kind,
				"entry_id":   change.EntryID,
				"error":      err.Error(),
			})
		}
	}
}
