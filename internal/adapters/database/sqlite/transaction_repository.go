package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghb72/Ranch-Finance/internal/apperrors"
	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	"github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
)

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates the SQLite-backed local transaction store.
func NewTransactionRepository(db *sql.DB) repositories.TransactionRepositoryFacade {
	return &transactionRepository{db: db}
}

var _ repositories.TransactionRepositoryFacade = (*transactionRepository)(nil)

const transactionColumns = `local_key, global_id, kind, amount, date, description, category, payment_method, author, created_at, sync_state, attachment`

// storageErr tags a low-level persistence failure so callers can match on
// apperrors.ErrStorage while keeping the operation context in the message.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorage, err)
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (global_id, kind, amount, date, description, category, payment_method, author, created_at, sync_state, attachment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	createdAt := txn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, query,
		txn.GlobalID,
		string(txn.Kind),
		txn.Amount.String(),
		txn.Date,
		txn.Description,
		string(txn.Category),
		string(txn.PaymentMethod),
		txn.Author,
		createdAt,
		string(domain.SyncPending),
		txn.Attachment,
	)
	if err != nil {
		return 0, storageErr("save transaction", err)
	}

	localKey, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("save transaction", err)
	}
	return localKey, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions ORDER BY created_at DESC, local_key DESC;`, transactionColumns)
	return r.queryTransactions(ctx, "list transactions", query)
}

func (r *transactionRepository) ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error) {
	// Dates are YYYY-MM-DD, so lexical comparison is chronological and the
	// whole calendar days at both ends are included.
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE date >= ? AND date <= ? ORDER BY created_at DESC, local_key DESC;`, transactionColumns)
	return r.queryTransactions(ctx, "list transactions by date range", query, start, end)
}

func (r *transactionRepository) ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE sync_state = ? ORDER BY created_at ASC, local_key ASC;`, transactionColumns)
	return r.queryTransactions(ctx, "list pending transactions", query, string(domain.SyncPending))
}

func (r *transactionRepository) CountPendingTransactions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE sync_state = ?;`, string(domain.SyncPending)).Scan(&count)
	if err != nil {
		return 0, storageErr("count pending transactions", err)
	}
	return count, nil
}

func (r *transactionRepository) MarkTransactionsSynced(ctx context.Context, localKeys []int64) error {
	if len(localKeys) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(localKeys))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(localKeys))
	for i, k := range localKeys {
		args[i] = k
	}

	// One statement so the whole batch transitions together; keys that do
	// not exist simply match nothing.
	query := fmt.Sprintf(`UPDATE transactions SET sync_state = '%s' WHERE local_key IN (%s);`, domain.SyncSynced, placeholders)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storageErr("mark transactions synced", err)
	}
	return nil
}

func (r *transactionRepository) UpsertRemoteTransaction(ctx context.Context, txn domain.Transaction) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, storageErr("upsert remote transaction", err)
	}
	defer tx.Rollback()

	var localKey int64
	var state string
	err = tx.QueryRowContext(ctx, `SELECT local_key, sync_state FROM transactions WHERE global_id = ?;`, txn.GlobalID).Scan(&localKey, &state)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (global_id, kind, amount, date, description, category, payment_method, author, created_at, sync_state)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
		`,
			txn.GlobalID,
			string(txn.Kind),
			txn.Amount.String(),
			txn.Date,
			txn.Description,
			string(txn.Category),
			string(txn.PaymentMethod),
			txn.Author,
			txn.CreatedAt,
			string(domain.SyncSynced),
		)
		if err != nil {
			return false, storageErr("upsert remote transaction", err)
		}
		if err := tx.Commit(); err != nil {
			return false, storageErr("upsert remote transaction", err)
		}
		return true, nil

	case err != nil:
		return false, storageErr("upsert remote transaction", err)

	case state == string(domain.SyncPending):
		// Local pending edit wins: the remote copy is a stale echo of a
		// record this device has not finished pushing.
		return false, nil

	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE transactions
			SET kind = ?, amount = ?, date = ?, description = ?, category = ?, payment_method = ?, author = ?, created_at = ?
			WHERE local_key = ?;
		`,
			string(txn.Kind),
			txn.Amount.String(),
			txn.Date,
			txn.Description,
			string(txn.Category),
			string(txn.PaymentMethod),
			txn.Author,
			txn.CreatedAt,
			localKey,
		)
		if err != nil {
			return false, storageErr("upsert remote transaction", err)
		}
		if err := tx.Commit(); err != nil {
			return false, storageErr("upsert remote transaction", err)
		}
		return false, nil
	}
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, localKey int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE local_key = ?;`, localKey); err != nil {
		return storageErr("delete transaction", err)
	}
	return nil
}

func (r *transactionRepository) queryTransactions(ctx context.Context, op, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return txns, nil
}

func scanTransaction(rows *sql.Rows) (domain.Transaction, error) {
	var (
		txn        domain.Transaction
		kind       string
		amount     string
		category   string
		method     string
		state      string
		attachment []byte
	)
	err := rows.Scan(
		&txn.LocalKey,
		&txn.GlobalID,
		&kind,
		&amount,
		&txn.Date,
		&txn.Description,
		&category,
		&method,
		&txn.Author,
		&txn.CreatedAt,
		&state,
		&attachment,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("corrupt amount %q for %s: %w", amount, txn.GlobalID, err)
	}
	txn.Kind = domain.TransactionKind(kind)
	txn.Category = domain.Category(category)
	txn.PaymentMethod = domain.PaymentMethod(method)
	txn.SyncState = domain.SyncState(state)
	txn.Attachment = attachment
	return txn, nil
}
