// Package spreadsheet implements the ledger store over a Google Sheets
// worksheet, the backend's original system of record. Each transaction is
// one row; the global ID column makes appends idempotent.
package spreadsheet

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
)

// headerRow is written once when the worksheet is empty. Column order is
// the contract for every read and append below.
var headerRow = []any{"ID", "Tipo", "Monto", "Fecha", "Descripción", "Categoría", "Método de Pago", "Usuario", "Creado"}

const createdAtLayout = time.RFC3339

type SheetsLedgerStore struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// Credentials selects how the Sheets client authenticates. JSON takes
// precedence over FilePath when both are set.
type Credentials struct {
	JSON     string
	FilePath string
}

// NewSheetsLedgerStore builds the store and writes the header row if the
// worksheet is still blank.
func NewSheetsLedgerStore(ctx context.Context, spreadsheetID, worksheet string, creds Credentials) (portsrepo.LedgerStore, error) {
	var opts []option.ClientOption
	switch {
	case creds.JSON != "":
		// Parse inline credentials up front so a malformed blob fails at
		// startup instead of on the first API call.
		parsed, err := google.CredentialsFromJSON(ctx, []byte(creds.JSON), sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("invalid google credentials json: %w", err)
		}
		opts = append(opts, option.WithCredentials(parsed))
	case creds.FilePath != "":
		opts = append(opts, option.WithCredentialsFile(creds.FilePath), option.WithScopes(sheets.SpreadsheetsScope))
	default:
		return nil, fmt.Errorf("no google credentials configured")
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	store := &SheetsLedgerStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}
	if err := store.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

var _ portsrepo.LedgerStore = (*SheetsLedgerStore)(nil)

func (s *SheetsLedgerStore) ensureHeader(ctx context.Context) error {
	readRange := fmt.Sprintf("%s!A1:I1", s.worksheet)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read worksheet header: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, readRange, &sheets.ValueRange{
		Values: [][]any{headerRow},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write worksheet header: %w", err)
	}
	return nil
}

// AppendTransactions appends rows for global IDs not yet on the sheet.
// Duplicates within the batch and against existing rows are skipped.
func (s *SheetsLedgerStore) AppendTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	existing, err := s.existingIDs(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([][]any, 0, len(txns))
	for _, txn := range txns {
		if _, dup := existing[txn.GlobalID]; dup {
			continue
		}
		existing[txn.GlobalID] = struct{}{}
		rows = append(rows, []any{
			txn.GlobalID,
			string(txn.Kind),
			txn.Amount.String(),
			txn.Date,
			txn.Description,
			string(txn.Category),
			string(txn.PaymentMethod),
			txn.Author,
			txn.CreatedAt.UTC().Format(createdAtLayout),
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	appendRange := fmt.Sprintf("%s!A:I", s.worksheet)
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, &sheets.ValueRange{
		Values: rows,
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to append rows: %w", err)
	}
	return len(rows), nil
}

func (s *SheetsLedgerStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	readRange := fmt.Sprintf("%s!A2:I", s.worksheet)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}

	txns := make([]domain.Transaction, 0, len(resp.Values))
	for _, row := range resp.Values {
		txn, ok := parseRow(row)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (s *SheetsLedgerStore) ListTransactionsByDateRange(ctx context.Context, start, end string) ([]domain.Transaction, error) {
	all, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, 0)
	for _, txn := range all {
		if txn.Date >= start && txn.Date <= end {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (s *SheetsLedgerStore) existingIDs(ctx context.Context) (map[string]struct{}, error) {
	readRange := fmt.Sprintf("%s!A2:A", s.worksheet)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read id column: %w", err)
	}

	ids := make(map[string]struct{}, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if id, ok := row[0].(string); ok && id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// parseRow converts a sheet row back into a transaction. Rows edited by
// hand can be malformed; those are skipped rather than failing the read.
func parseRow(row []any) (domain.Transaction, bool) {
	if len(row) < 4 {
		return domain.Transaction{}, false
	}

	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		s, _ := row[i].(string)
		return s
	}

	id := cell(0)
	if id == "" {
		return domain.Transaction{}, false
	}
	amount, err := decimal.NewFromString(cell(2))
	if err != nil {
		return domain.Transaction{}, false
	}

	createdAt, _ := time.Parse(createdAtLayout, cell(8))

	return domain.Transaction{
		GlobalID:      id,
		Kind:          domain.TransactionKind(cell(1)),
		Amount:        amount,
		Date:          cell(3),
		Description:   cell(4),
		Category:      domain.Category(cell(5)),
		PaymentMethod: domain.PaymentMethod(cell(6)),
		Author:        cell(7),
		CreatedAt:     createdAt,
	}, true
}
