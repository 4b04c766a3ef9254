package repositories

import (
	"context"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
)

// RemoteLedger is the device-side view of the remote sync endpoint.
type RemoteLedger interface {
	// PushBatch sends pending transactions in a single all-or-nothing batch.
	// A non-nil error means the remote acknowledged none of them.
	PushBatch(ctx context.Context, txns []domain.Transaction) error

	// FetchTransactions retrieves the remote transaction set.
	FetchTransactions(ctx context.Context) ([]domain.Transaction, error)

	// Ping reports whether the remote endpoint is currently reachable.
	Ping(ctx context.Context) bool
}
