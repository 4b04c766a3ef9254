package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portssvc "github.com/ghb72/Ranch-Finance/internal/core/ports/services"
)

const exportSheetName = "Transacciones"

var exportHeaders = []any{"ID", "Kind", "Amount", "Date", "Description", "Category", "Payment Method", "Author", "Created", "Sync State"}

// exportServiceImpl writes the local ledger to an .xlsx workbook.
type exportServiceImpl struct {
	BaseService
	ledger portssvc.LedgerReaderSvc
}

// NewExportService creates the spreadsheet exporter over the ledger.
func NewExportService(ledger portssvc.LedgerReaderSvc) portssvc.ExporterSvc {
	return &exportServiceImpl{ledger: ledger}
}

var _ portssvc.ExporterSvc = (*exportServiceImpl)(nil)

func (s *exportServiceImpl) ExportXLSX(ctx context.Context, path, start, end string) error {
	var (
		txns []domain.Transaction
		err  error
	)
	if start == "" && end == "" {
		txns, err = s.ledger.ListTransactions(ctx)
	} else {
		txns, err = s.ledger.ListTransactionsByDateRange(ctx, start, end)
	}
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fmt.Errorf("failed to prepare worksheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, txn := range txns {
		amount, _ := txn.Amount.Float64()
		row := []any{
			txn.GlobalID,
			string(txn.Kind),
			amount,
			txn.Date,
			txn.Description,
			string(txn.Category),
			string(txn.PaymentMethod),
			txn.Author,
			txn.CreatedAt.Format("2006-01-02 15:04:05"),
			string(txn.SyncState),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	summary := domain.Summarize(txns)
	income, _ := summary.TotalIncome.Float64()
	expense, _ := summary.TotalExpense.Float64()
	balance, _ := summary.Balance.Float64()
	footer := []any{"", "Totals", "", "", "", "", "", "", "", ""}
	if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", len(txns)+3), &footer); err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}
	totals := []any{"", "Income", income, "Expense", expense, "Balance", balance}
	if err := f.SetSheetRow(exportSheetName, fmt.Sprintf("A%d", len(txns)+4), &totals); err != nil {
		return fmt.Errorf("failed to write totals row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	s.LogInfo(ctx, "Ledger exported",
		slog.String("path", path),
		slog.Int("rows", len(txns)))
	return nil
}
