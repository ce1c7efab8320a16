package notifier

import (
	"context"
	"sync"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// DefaultBuffer is the per subscriber queue length when none is configured
const DefaultBuffer = 16

type subscription struct {
	ch   chan coreport.BalanceChange
	once sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub is an in-process pub/sub of balance changes keyed by account id.
// A subscriber whose queue is full misses the change instead of stalling the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]*subscription
	nextID uint64
	buffer int
	closed bool
	logger coreport.Logger
}

var _ coreport.BalanceNotifier = (*Hub)(nil)

// NewHub creates a hub whose subscriptions queue up to buffer changes
func NewHub(buffer int, logger coreport.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[string]map[uint64]*subscription),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe returns the changes of one account and a cancel func that ends the
// subscription and closes the channel. Cancel may be called more than once.
func (h *Hub) Subscribe(accountID string) (<-chan coreport.BalanceChange, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscription{ch: make(chan coreport.BalanceChange, h.buffer)}
	if h.closed {
		sub.close()
		return sub.ch, func() {}
	}

	h.nextID++
	id := h.nextID
	if h.subs[accountID] == nil {
		h.subs[accountID] = make(map[uint64]*subscription)
	}
	h.subs[accountID][id] = sub

	return sub.ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[accountID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.subs, accountID)
			}
		}
		sub.close()
	}
}

// Publish delivers change to every subscriber of its account without blocking
func (h *Hub) Publish(_ context.Context, change coreport.BalanceChange) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for _, sub := range h.subs[change.AccountID] {
		select {
		case sub.ch <- change:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("Balance change dropped for slow subscribers", map[string]any{
			"account_id": change.AccountID,
			"entry_id":   change.EntryID,
			"dropped":    dropped,
		})
	}
	return nil
}

// Subscribers returns the number of live subscriptions of an account
func (h *Hub) Subscribers(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[accountID])
}

// Close ends every subscription; later subscriptions receive a closed channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for accountID, subs := range h.subs {
		for _, sub := range subs {
			sub.close()
		}
		delete(h.subs, accountID)
	}
	h.closed = true
}
