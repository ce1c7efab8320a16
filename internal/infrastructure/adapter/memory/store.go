// Package memory holds an in-process ledger store for tests and local runs.
// Units are serialised by one mutex and rolled back by replaying their undo journal.
package memory

import (
	"sort"
	"sync"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// Store holds the accounts and entries shared by every repository of one unit of work
type Store struct {
	mu       sync.RWMutex
	spenders map[string]*entity.SpenderAccount
	earners  map[string]*entity.EarnerAccount
	entries  []*entity.LedgerEntry
	byID     map[string]int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		spenders: make(map[string]*entity.SpenderAccount),
		earners:  make(map[string]*entity.EarnerAccount),
		byID:     make(map[string]int),
	}
}

// journal records how to undo the writes of one unit, newest last.
// Writes made outside the unit are not recorded, so a rollback leaves them in place.
type journal struct {
	undo []func(s *Store)
}

func (j *journal) record(fn func(s *Store)) {
	if j != nil {
		j.undo = append(j.undo, fn)
	}
}

// rollback undoes the unit's writes in reverse order
func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i](s)
	}
	j.undo = nil
}

// removeEntry drops one entry and reindexes the rest; the caller holds mu
func (s *Store) removeEntry(id string) {
	idx, ok := s.byID[id]
	if !ok {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	delete(s.byID, id)
	for i := idx; i < len(s.entries); i++ {
		s.byID[s.entries[i].ID] = i
	}
}

// accountIDs returns every id holding a spender or earner row, sorted
func (s *Store) accountIDs() []string {
	seen := make(map[string]struct{}, len(s.spenders)+len(s.earners))
	for id := range s.spenders {
		seen[id] = struct{}{}
	}
	for id := range s.earners {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
