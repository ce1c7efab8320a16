package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// DefaultChannelPrefix is prepended to the account id to form the channel name
const DefaultChannelPrefix = "ledger:balance:"

// RedisPublisher publishes balance changes as JSON on one Redis channel per account
type RedisPublisher struct {
	client       redis.Cmdable
	prefix       string
	timeout      coreport.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ coreport.BalanceNotifier = (*RedisPublisher)(nil)

// NewRedisPublisher creates a publisher. A zero timeout leaves the caller's deadline in place.
func NewRedisPublisher(
	client redis.Cmdable,
	prefix string,
	timeout coreport.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisPublisher{
		client:       client,
		prefix:       prefix,
		timeout:      timeout,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Channel returns the channel changes of accountID are published on
func (p *RedisPublisher) Channel(accountID string) string {
	return p.prefix + accountID
}

// Publish sends change to the account's channel
func (p *RedisPublisher) Publish(ctx context.Context, change coreport.BalanceChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encoding balance change: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = p.timeProvider.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	receivers, err := p.client.Publish(ctx, p.Channel(change.AccountID), payload).Result()
	if err != nil {
		return fmt.Errorf("publishing balance change to redis: %w", err)
	}

	p.logger.Debug("Balance change published", map[string]any{
		"account_id": change.AccountID,
		"entry_id":   change.EntryID,
		"receivers":  receivers,
	})
	return nil
}

// Ping checks that Redis answers
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
