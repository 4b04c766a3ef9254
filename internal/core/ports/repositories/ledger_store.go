package repositories

import (
	"context"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
)

// LedgerStore is the backend's durable view of the shared ledger. The store
// is append-only: there is no delete path, matching the spreadsheet it
// originally fronted.
type LedgerStore interface {
	// AppendTransactions adds the batch, silently skipping global IDs that
	// are already present, and returns how many rows were actually added.
	AppendTransactions(ctx context.Context, txns []domain.Transaction) (int, error)

	// ListTransactions returns the full remote ledger.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByDateRange returns transactions dated inside
	// [start, end], both YYYY-MM-DD inclusive.
	ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error)
}
