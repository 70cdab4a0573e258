package devserver

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jdoyle/centavo/finance"
)

var errTransactionNotFound = errors.New("transaction not found")

// txStore keeps each account's transactions in memory.
type txStore struct {
	mu        sync.RWMutex
	byAccount map[string][]finance.Transaction
}

func newTxStore() *txStore {
	return &txStore{byAccount: make(map[string][]finance.Transaction)}
}

func (s *txStore) add(accountID string, tx finance.Transaction) finance.Transaction {
	tx.ID = uuid.New().String()
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}
	s.mu.Lock()
	s.byAccount[accountID] = append(s.byAccount[accountID], tx)
	s.mu.Unlock()
	return tx
}

// list returns the account's transactions newest first, filtered by the
// optional bounds.
func (s *txStore) list(accountID string, from, to time.Time, category string) []finance.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]finance.Transaction, 0)
	for _, tx := range s.byAccount[accountID] {
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Date.After(to) {
			continue
		}
		if category != "" && tx.Category != category {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (s *txStore) delete(accountID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := s.byAccount[accountID]
	for i, tx := range txs {
		if tx.ID == id {
			s.byAccount[accountID] = append(txs[:i], txs[i+1:]...)
			return nil
		}
	}
	return errTransactionNotFound
}
