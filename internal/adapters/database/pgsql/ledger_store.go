// Package pgsql holds the PostgreSQL-backed ledger store used when the
// backend runs against a relational database instead of a spreadsheet.
package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
)

type PgxLedgerStore struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerStore creates a ledger store over the given pool.
func NewPgxLedgerStore(pool *pgxpool.Pool) portsrepo.LedgerStore {
	return &PgxLedgerStore{pool: pool}
}

var _ portsrepo.LedgerStore = (*PgxLedgerStore)(nil)

// AppendTransactions inserts the batch inside one transaction. Rows whose
// global ID already exists are skipped via ON CONFLICT DO NOTHING and do
// not count toward the returned total.
func (s *PgxLedgerStore) AppendTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin append transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO transactions (global_id, kind, amount, date, description, category, payment_method, author, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (global_id) DO NOTHING;
	`

	added := 0
	for _, txn := range txns {
		tag, err := tx.Exec(ctx, query,
			txn.GlobalID,
			string(txn.Kind),
			txn.Amount.String(),
			txn.Date,
			txn.Description,
			string(txn.Category),
			string(txn.PaymentMethod),
			txn.Author,
			txn.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to append transaction %s: %w", txn.GlobalID, err)
		}
		added += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit append batch: %w", err)
	}
	return added, nil
}

func (s *PgxLedgerStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	const query = `
		SELECT global_id, kind, amount, date, description, category, payment_method, author, created_at
		FROM transactions
		ORDER BY date, created_at;
	`
	return s.queryTransactions(ctx, query)
}

func (s *PgxLedgerStore) ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error) {
	const query = `
		SELECT global_id, kind, amount, date, description, category, payment_method, author, created_at
		FROM transactions
		WHERE date >= $1 AND date <= $2
		ORDER BY date, created_at;
	`
	return s.queryTransactions(ctx, query, start, end)
}

func (s *PgxLedgerStore) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			txn    domain.Transaction
			amount string
		)
		if err := rows.Scan(
			&txn.GlobalID,
			&txn.Kind,
			&amount,
			&txn.Date,
			&txn.Description,
			&txn.Category,
			&txn.PaymentMethod,
			&txn.Author,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return txns, nil
}
