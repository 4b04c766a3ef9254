package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ghb72/Ranch-Finance/internal/apperrors"
	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	portssvc "github.com/ghb72/Ranch-Finance/internal/core/ports/services"
)

// syncServiceImpl implements the push-then-pull reconciliation protocol.
//
// Ordering matters: pushing before pulling means a device's just-created
// records are marked synced before the pull could re-deliver them, and the
// pending-wins upsert rule covers the window in between.
type syncServiceImpl struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	settingRepo portsrepo.SettingRepository
	remote      portsrepo.RemoteLedger // nil when no endpoint is configured

	// mu enforces at most one combined sync in flight; a second request is
	// rejected with ErrSyncInProgress instead of queueing.
	mu  sync.Mutex
	now func() time.Time
}

// NewSyncService creates the sync engine. Pass a nil remote to keep the
// engine in local-only mode: every Sync becomes a counted no-op.
func NewSyncService(txnRepo portsrepo.TransactionRepositoryFacade, settingRepo portsrepo.SettingRepository, remote portsrepo.RemoteLedger) portssvc.SyncSvc {
	return &syncServiceImpl{
		txnRepo:     txnRepo,
		settingRepo: settingRepo,
		remote:      remote,
		now:         time.Now,
	}
}

var _ portssvc.SyncSvc = (*syncServiceImpl)(nil)

func (s *syncServiceImpl) Sync(ctx context.Context) (domain.SyncResult, error) {
	if !s.mu.TryLock() {
		return domain.SyncResult{}, apperrors.ErrSyncInProgress
	}
	defer s.mu.Unlock()

	result := domain.SyncResult{}

	reachable := s.remote != nil && s.remote.Ping(ctx)
	if reachable {
		sent, err := s.push(ctx)
		if err != nil {
			return result, err
		}
		result.Sent = sent

		pulled, err := s.pull(ctx)
		if err != nil {
			return result, err
		}
		result.Pulled = pulled
	} else {
		s.LogDebug(ctx, "Remote endpoint not reachable, skipping sync")
	}

	stillPending, err := s.txnRepo.CountPendingTransactions(ctx)
	if err != nil {
		return result, err
	}
	result.StillPending = stillPending

	s.LogInfo(ctx, "Sync finished",
		slog.Int("sent", result.Sent),
		slog.Int("pulled", result.Pulled),
		slog.Int("still_pending", result.StillPending))
	return result, nil
}

// push sends the whole pending set as one batch and marks it synced only
// when the remote acknowledged all of it. A connectivity failure leaves
// every record pending and is not an error; only storage faults are.
func (s *syncServiceImpl) push(ctx context.Context) (int, error) {
	pending, err := s.txnRepo.ListPendingTransactions(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	if err := s.remote.PushBatch(ctx, pending); err != nil {
		s.LogInfo(ctx, "Push failed, records stay pending",
			slog.Int("pending", len(pending)),
			slog.String("error", err.Error()))
		return 0, nil
	}

	localKeys := make([]int64, len(pending))
	for i, txn := range pending {
		localKeys[i] = txn.LocalKey
	}
	if err := s.txnRepo.MarkTransactionsSynced(ctx, localKeys); err != nil {
		return 0, err
	}
	return len(pending), nil
}

// pull fetches the full remote set and merges it by global identity. Only
// genuinely new local insertions count as pulled. The watermark setting is
// written after a successful pull; the fetch itself is deliberately
// unscoped (see DESIGN.md) since upsert-by-identity is idempotent.
func (s *syncServiceImpl) pull(ctx context.Context) (int, error) {
	remoteTxns, err := s.remote.FetchTransactions(ctx)
	if err != nil {
		s.LogInfo(ctx, "Pull failed", slog.String("error", err.Error()))
		return 0, nil
	}

	pulled := 0
	for _, txn := range remoteTxns {
		if txn.GlobalID == "" {
			continue
		}
		inserted, err := s.txnRepo.UpsertRemoteTransaction(ctx, txn)
		if err != nil {
			return pulled, err
		}
		if inserted {
			pulled++
		}
	}

	if err := s.settingRepo.SetSetting(ctx, domain.SettingLastSyncAt, s.now().UTC().Format(time.RFC3339)); err != nil {
		return pulled, err
	}
	return pulled, nil
}
