package services

import "context"

// ExporterSvc writes the local ledger out for use beyond the app.
type ExporterSvc interface {
	// ExportXLSX writes an .xlsx workbook at path. Empty start/end exports
	// the whole ledger; otherwise both bound the date range inclusively.
	ExportXLSX(ctx context.Context, path, start, end string) error
}
