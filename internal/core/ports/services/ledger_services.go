package services

import (
	"context"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	"github.com/ghb72/Ranch-Finance/internal/dto"
)

// LedgerReaderSvc defines read operations over the device ledger.
type LedgerReaderSvc interface {
	// ListTransactions returns every local transaction, newest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByDateRange returns local transactions dated inside
	// [start, end], both YYYY-MM-DD inclusive.
	ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error)

	// ListPendingTransactions returns the not-yet-synced transactions.
	ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error)

	// CountPendingTransactions returns the "N pending" indicator value.
	CountPendingTransactions(ctx context.Context) (int, error)

	// Summarize aggregates the ledger over a date range.
	Summarize(ctx context.Context, start, end string) (domain.Summary, error)

	// UserName returns the configured display name, or "" when unset.
	UserName(ctx context.Context) (string, error)
}

// LedgerWriterSvc defines write operations over the device ledger.
type LedgerWriterSvc interface {
	// AddTransaction validates and persists a new entry. It always succeeds
	// offline; only validation failures and storage faults are errors.
	AddTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes an entry locally. The remote ledger is never
	// touched.
	DeleteTransaction(ctx context.Context, localKey int64) error

	// SetUserName stores the display name stamped on future entries.
	SetUserName(ctx context.Context, name string) error
}

// LedgerSvcFacade combines all ledger operations.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
