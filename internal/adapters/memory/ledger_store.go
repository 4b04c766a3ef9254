// Package memory holds a map-backed LedgerStore used when the backend is
// started without spreadsheet or database credentials, and as the store
// double in handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
)

type ledgerStore struct {
	mu   sync.RWMutex
	byID map[string]int
	txns []domain.Transaction
}

// NewLedgerStore creates an empty in-memory ledger store.
func NewLedgerStore() portsrepo.LedgerStore {
	return &ledgerStore{byID: make(map[string]int)}
}

var _ portsrepo.LedgerStore = (*ledgerStore)(nil)

func (s *ledgerStore) AppendTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, txn := range txns {
		if _, exists := s.byID[txn.GlobalID]; exists {
			continue
		}
		s.byID[txn.GlobalID] = len(s.txns)
		s.txns = append(s.txns, txn)
		added++
	}
	return added, nil
}

func (s *ledgerStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.txns))
	copy(out, s.txns)
	return out, nil
}

func (s *ledgerStore) ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, 0)
	for _, txn := range s.txns {
		if txn.Date >= start && txn.Date <= end {
			out = append(out, txn)
		}
	}
	return out, nil
}
