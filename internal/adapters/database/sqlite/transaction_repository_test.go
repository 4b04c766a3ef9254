package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ghb72/Ranch-Finance/internal/adapters/database/sqlite"
	"github.com/ghb72/Ranch-Finance/internal/apperrors"
	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	"github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	"github.com/ghb72/Ranch-Finance/pkg/database"
)

func newTestRepo(t *testing.T) repositories.TransactionRepositoryFacade {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))
	return sqlite.NewTransactionRepository(db)
}

func testTxn(kind domain.TransactionKind, amount float64, date string) domain.Transaction {
	return domain.Transaction{
		GlobalID:      uuid.NewString(),
		Kind:          kind,
		Amount:        decimal.NewFromFloat(amount),
		Date:          date,
		Description:   "hay bales",
		Category:      domain.CategoryGeneral,
		PaymentMethod: domain.PaymentCash,
		Author:        "Guillermo",
		CreatedAt:     time.Now().UTC(),
	}
}

func TestSaveAndListTransactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testTxn(domain.Income, 500.00, "2026-08-30")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := testTxn(domain.Expense, 75.25, "2026-08-30")

	_, err := repo.SaveTransaction(ctx, first)
	require.NoError(t, err)
	key2, err := repo.SaveTransaction(ctx, second)
	require.NoError(t, err)
	require.NotZero(t, key2)

	all, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	require.Equal(t, second.GlobalID, all[0].GlobalID)
	require.Equal(t, first.GlobalID, all[1].GlobalID)
	require.Equal(t, domain.SyncPending, all[0].SyncState)
	require.True(t, all[1].Amount.Equal(decimal.NewFromFloat(500.00)))
}

func TestListTransactionsByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inRange := testTxn(domain.Income, 100, "2026-08-15")
	onEdge := testTxn(domain.Expense, 50, "2026-08-31")
	outside := testTxn(domain.Expense, 10, "2026-09-01")

	for _, txn := range []domain.Transaction{inRange, onEdge, outside} {
		_, err := repo.SaveTransaction(ctx, txn)
		require.NoError(t, err)
	}

	got, err := repo.ListTransactionsByDateRange(ctx, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, txn := range got {
		require.NotEqual(t, outside.GlobalID, txn.GlobalID)
	}
}

func TestMarkTransactionsSynced(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	key1, err := repo.SaveTransaction(ctx, testTxn(domain.Income, 10, "2026-08-30"))
	require.NoError(t, err)
	key2, err := repo.SaveTransaction(ctx, testTxn(domain.Expense, 20, "2026-08-30"))
	require.NoError(t, err)

	// Unknown keys in the batch are a no-op.
	require.NoError(t, repo.MarkTransactionsSynced(ctx, []int64{key1, key2, 9999}))

	pending, err := repo.ListPendingTransactions(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	count, err := repo.CountPendingTransactions(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestUpsertRemoteTransaction_InsertsAsSynced(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	remote := testTxn(domain.Income, 200, "2026-08-20")
	inserted, err := repo.UpsertRemoteTransaction(ctx, remote)
	require.NoError(t, err)
	require.True(t, inserted)

	all, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, domain.SyncSynced, all[0].SyncState)

	// Pulling the same record again is idempotent.
	inserted, err = repo.UpsertRemoteTransaction(ctx, remote)
	require.NoError(t, err)
	require.False(t, inserted)

	all, err = repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpsertRemoteTransaction_PendingWins(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	local := testTxn(domain.Income, 100, "2026-08-20")
	_, err := repo.SaveTransaction(ctx, local)
	require.NoError(t, err)

	remote := local
	remote.Amount = decimal.NewFromFloat(200)

	inserted, err := repo.UpsertRemoteTransaction(ctx, remote)
	require.NoError(t, err)
	require.False(t, inserted)

	all, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].Amount.Equal(decimal.NewFromFloat(100)), "local pending amount must survive the pull")
	require.Equal(t, domain.SyncPending, all[0].SyncState)
}

func TestUpsertRemoteTransaction_OverwritesSynced(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	key, err := repo.SaveTransaction(ctx, testTxn(domain.Income, 100, "2026-08-20"))
	require.NoError(t, err)
	require.NoError(t, repo.MarkTransactionsSynced(ctx, []int64{key}))

	all, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	remote := all[0]
	remote.Amount = decimal.NewFromFloat(250)
	remote.Description = "corrected"

	inserted, err := repo.UpsertRemoteTransaction(ctx, remote)
	require.NoError(t, err)
	require.False(t, inserted)

	all, err = repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].Amount.Equal(decimal.NewFromFloat(250)))
	require.Equal(t, "corrected", all[0].Description)
	require.Equal(t, domain.SyncSynced, all[0].SyncState)
}

func TestDeleteTransaction_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	key, err := repo.SaveTransaction(ctx, testTxn(domain.Expense, 30, "2026-08-30"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTransaction(ctx, key))
	require.NoError(t, repo.DeleteTransaction(ctx, key)) // missing key is fine

	all, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSaveTransaction_PersistsAttachment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	txn := testTxn(domain.Expense, 45, "2026-08-30")
	txn.Attachment = []byte{0xFF, 0xD8, 0xFF, 0xE0} // jpeg magic
	_, err := repo.SaveTransaction(ctx, txn)
	require.NoError(t, err)

	all, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Equal(t, txn.Attachment, all[0].Attachment)
}

func TestSettingRepository(t *testing.T) {
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))

	repo := sqlite.NewSettingRepository(db)
	ctx := context.Background()

	_, err = repo.GetSetting(ctx, domain.SettingUserName)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.SetSetting(ctx, domain.SettingUserName, "Guillermo"))
	got, err := repo.GetSetting(ctx, domain.SettingUserName)
	require.NoError(t, err)
	require.Equal(t, "Guillermo", got)

	require.NoError(t, repo.SetSetting(ctx, domain.SettingUserName, "Memo"))
	got, err = repo.GetSetting(ctx, domain.SettingUserName)
	require.NoError(t, err)
	require.Equal(t, "Memo", got)
}
