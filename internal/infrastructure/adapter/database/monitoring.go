package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// PoolStats is a snapshot of the connection pool
type PoolStats struct {
	OpenConnections    int
	InUse              int
	Idle               int
	MaxOpenConnections int
	WaitCount          int64
	WaitDuration       time.Duration
}

func poolStatsFrom(s sql.DBStats) PoolStats {
	return PoolStats{
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		MaxOpenConnections: s.MaxOpenConnections,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
	}
}

// PoolMonitor periodically logs connection pool usage and warns when callers start waiting
type PoolMonitor struct {
	db       *sql.DB
	logger   coreport.Logger
	stopChan chan struct{}
	stopOnce sync.Once

	mu        sync.Mutex
	lastWaits int64
}

// NewPoolMonitor creates a monitor for db
func NewPoolMonitor(db *sql.DB, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start samples the pool every interval until Stop is called
func (m *PoolMonitor) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sample()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Sample logs one snapshot and returns it
func (m *PoolMonitor) Sample() PoolStats {
	stats := poolStatsFrom(m.db.Stats())

	m.mu.Lock()
	newWaits := stats.WaitCount - m.lastWaits
	m.lastWaits = stats.WaitCount
	m.mu.Unlock()

	fields := map[string]any{
		"open":          stats.OpenConnections,
		"in_use":        stats.InUse,
		"idle":          stats.Idle,
		"max_open":      stats.MaxOpenConnections,
		"wait_count":    stats.WaitCount,
		"wait_duration": stats.WaitDuration.String(),
	}
	if newWaits > 0 {
		fields["new_waits"] = newWaits
		m.logger.Warn("Connection pool exhausted, callers waited for a connection", fields)
	} else {
		m.logger.Debug("Connection pool stats", fields)
	}
	return stats
}

// Stop ends sampling; calling it more than once is safe
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}
