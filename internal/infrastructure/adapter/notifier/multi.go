package notifier

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// Multi fans a change out to several notifiers. Every notifier is tried; the errors are joined.
type Multi []coreport.BalanceNotifier

var _ coreport.BalanceNotifier = Multi(nil)

// Publish sends change to every notifier in order
func (m Multi) Publish(ctx context.Context, change coreport.BalanceChange) error {
	var errList []error
	for _, n := range m {
		if err := n.Publish(ctx, change); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
