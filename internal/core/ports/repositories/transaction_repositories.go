package repositories

import (
	"context"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
)

// TransactionReader defines read operations over the local transaction store.
type TransactionReader interface {
	// ListTransactions retrieves every transaction, newest first (createdAt desc).
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByDateRange retrieves transactions whose calendar date
	// falls inside [start, end], both YYYY-MM-DD inclusive. Filtering is on
	// the transaction date, not on createdAt.
	ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error)

	// ListPendingTransactions retrieves transactions not yet acknowledged by
	// the remote ledger, oldest first.
	ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error)

	// CountPendingTransactions returns how many transactions are unsynced.
	CountPendingTransactions(ctx context.Context) (int, error)
}

// TransactionWriter defines write operations over the local transaction store.
type TransactionWriter interface {
	// SaveTransaction persists a locally created transaction as pending and
	// returns its local surrogate key.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error)

	// MarkTransactionsSynced transitions the given local keys to synced in a
	// single batch. Keys that do not exist are ignored.
	MarkTransactionsSynced(ctx context.Context, localKeys []int64) error

	// UpsertRemoteTransaction merges a record pulled from the remote ledger,
	// keyed by global ID. Absent locally: inserted as synced. Present and
	// synced: fields overwritten. Present and pending: the remote copy is
	// discarded so an in-flight local change is never clobbered by a stale
	// remote echo. Returns whether a new row was inserted.
	UpsertRemoteTransaction(ctx context.Context, txn domain.Transaction) (bool, error)

	// DeleteTransaction removes a transaction locally. Deleting a missing
	// key is not an error. Deletions never propagate to the remote ledger.
	DeleteTransaction(ctx context.Context, localKey int64) error
}

// TransactionRepositoryFacade combines all local transaction store operations.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
