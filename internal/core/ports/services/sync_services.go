package services

import (
	"context"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
)

// SyncSvc runs the push-then-pull reconciliation against the remote ledger.
type SyncSvc interface {
	// Sync pushes pending records, then pulls and merges the remote set.
	// Connectivity failures are reported through the result counts, never as
	// an error. The only errors are apperrors.ErrSyncInProgress and local
	// storage faults.
	Sync(ctx context.Context) (domain.SyncResult, error)
}
