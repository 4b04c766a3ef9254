// Command ranchofinanzas is the on-device ledger app. Entries are written
// to a local SQLite store first and reconciled with the remote API
// whenever it is reachable, so the ranch stays operational without signal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghb72/Ranch-Finance/internal/adapters/database/sqlite"
	"github.com/ghb72/Ranch-Finance/internal/adapters/remote"
	"github.com/ghb72/Ranch-Finance/internal/apperrors"
	"github.com/ghb72/Ranch-Finance/internal/connectivity"
	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	portssvc "github.com/ghb72/Ranch-Finance/internal/core/ports/services"
	"github.com/ghb72/Ranch-Finance/internal/core/services"
	"github.com/ghb72/Ranch-Finance/internal/dto"
	"github.com/ghb72/Ranch-Finance/internal/platform/config"
	"github.com/ghb72/Ranch-Finance/pkg/database"
)

const usage = `Usage: ranchofinanzas <command> [flags]

Commands:
  add      record a new income or expense
  list     show recorded transactions
  summary  show totals over a date range
  pending  show transactions not yet synced
  delete   remove a transaction from this device
  sync     push pending entries and pull remote ones
  export   write the ledger to an .xlsx workbook
  name     show or set the display name stamped on new entries
  watch    keep syncing whenever the endpoint is reachable
`

// app bundles the wired services handed to each subcommand.
type app struct {
	cfg    *config.AppConfig
	ledger portssvc.LedgerSvcFacade
	sync   portssvc.SyncSvc
	export portssvc.ExporterSvc
	remote *remote.Client // nil in local-only mode
	logger *slog.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.LoadAppConfig()
	if err != nil {
		fatal(err)
	}

	db, err := database.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		fatal(err)
	}
	defer db.Close()
	if err := sqlite.Migrate(db); err != nil {
		fatal(err)
	}

	txnRepo := sqlite.NewTransactionRepository(db)
	settingRepo := sqlite.NewSettingRepository(db)
	ledger := services.NewLedgerService(txnRepo, settingRepo)

	var remoteClient *remote.Client
	var remoteLedger portsrepo.RemoteLedger
	if cfg.APIBaseURL != "" {
		remoteClient = remote.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
		remoteLedger = remoteClient
	}

	a := &app{
		cfg:    cfg,
		ledger: ledger,
		sync:   services.NewSyncService(txnRepo, settingRepo, remoteLedger),
		export: services.NewExportService(ledger),
		remote: remoteClient,
		logger: logger,
	}

	ctx := context.Background()
	switch cmd := os.Args[1]; cmd {
	case "add":
		err = a.runAdd(ctx, os.Args[2:])
	case "list":
		err = a.runList(ctx, os.Args[2:])
	case "summary":
		err = a.runSummary(ctx, os.Args[2:])
	case "pending":
		err = a.runPending(ctx)
	case "delete":
		err = a.runDelete(ctx, os.Args[2:])
	case "sync":
		err = a.runSync(ctx)
	case "export":
		err = a.runExport(ctx, os.Args[2:])
	case "name":
		err = a.runName(ctx, os.Args[2:])
	case "watch":
		err = a.runWatch()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	kind := fs.String("kind", "expense", "income or expense")
	amount := fs.String("amount", "", "amount, e.g. 1250.50")
	date := fs.String("date", time.Now().Format(domain.DateLayout), "date as YYYY-MM-DD")
	desc := fs.String("desc", "", "description")
	category := fs.String("category", "", "agriculture, livestock-feedlot, livestock-range or general")
	method := fs.String("method", "", "cash, transfer, card or check")
	attach := fs.String("attach", "", "path to a receipt image to store with the entry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	amt, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid -amount %q: %w", *amount, apperrors.ErrValidation)
	}

	var attachment []byte
	if *attach != "" {
		attachment, err = os.ReadFile(*attach)
		if err != nil {
			return fmt.Errorf("failed to read attachment: %w", err)
		}
	}

	txn, err := a.ledger.AddTransaction(ctx, dto.CreateTransactionRequest{
		Kind:          *kind,
		Amount:        amt,
		Date:          *date,
		Description:   *desc,
		Category:      *category,
		PaymentMethod: *method,
		Attachment:    attachment,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s of %s on %s (pending sync)\n", txn.Kind, txn.Amount.StringFixed(2), txn.Date)
	return nil
}

func (a *app) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	start := fs.String("start", "", "start date YYYY-MM-DD")
	end := fs.String("end", "", "end date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		txns []domain.Transaction
		err  error
	)
	if *start == "" && *end == "" {
		txns, err = a.ledger.ListTransactions(ctx)
	} else {
		txns, err = a.ledger.ListTransactionsByDateRange(ctx, *start, *end)
	}
	if err != nil {
		return err
	}

	printTransactions(txns)
	return nil
}

func (a *app) runSummary(ctx context.Context, args []string) error {
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	start := fs.String("start", firstOfMonth.Format(domain.DateLayout), "start date YYYY-MM-DD")
	end := fs.String("end", now.Format(domain.DateLayout), "end date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	summary, err := a.ledger.Summarize(ctx, *start, *end)
	if err != nil {
		return err
	}

	fmt.Printf("Period %s to %s\n", *start, *end)
	fmt.Printf("  Income:  %s\n", summary.TotalIncome.StringFixed(2))
	fmt.Printf("  Expense: %s\n", summary.TotalExpense.StringFixed(2))
	fmt.Printf("  Balance: %s\n", summary.Balance.StringFixed(2))
	fmt.Printf("  Entries: %d\n", summary.Count)
	return nil
}

func (a *app) runPending(ctx context.Context) error {
	txns, err := a.ledger.ListPendingTransactions(ctx)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println("Nothing pending, all entries are synced.")
		return nil
	}
	printTransactions(txns)
	return nil
}

func (a *app) runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	key := fs.Int64("key", 0, "local key of the entry to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *key <= 0 {
		return fmt.Errorf("-key is required: %w", apperrors.ErrValidation)
	}

	if err := a.ledger.DeleteTransaction(ctx, *key); err != nil {
		return err
	}
	fmt.Printf("Deleted entry %d from this device. Copies already synced elsewhere are not affected.\n", *key)
	return nil
}

func (a *app) runSync(ctx context.Context) error {
	if a.remote == nil {
		fmt.Println("No sync endpoint configured (RF_API_BASE_URL). Running in local-only mode.")
	}

	result, err := a.sync.Sync(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Sent %d, pulled %d, still pending %d\n", result.Sent, result.Pulled, result.StillPending)
	return nil
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "ranchofinanzas.xlsx", "output workbook path")
	start := fs.String("start", "", "start date YYYY-MM-DD")
	end := fs.String("end", "", "end date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.export.ExportXLSX(ctx, *out, *start, *end); err != nil {
		return err
	}
	fmt.Printf("Ledger written to %s\n", *out)
	return nil
}

func (a *app) runName(ctx context.Context, args []string) error {
	if len(args) == 0 {
		name, err := a.ledger.UserName(ctx)
		if err != nil {
			return err
		}
		if name == "" {
			fmt.Println("No display name set. Use: ranchofinanzas name <name>")
			return nil
		}
		fmt.Println(name)
		return nil
	}

	if err := a.ledger.SetUserName(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("New entries will be recorded as %q\n", args[0])
	return nil
}

// runWatch keeps the device reconciled: it probes the endpoint on an
// interval and kicks off a sync on every offline-to-online transition.
func (a *app) runWatch() error {
	if a.remote == nil {
		return fmt.Errorf("watch needs RF_API_BASE_URL to be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := connectivity.NewMonitor(a.remote, a.cfg.ProbeInterval, a.logger)
	monitor.OnOnline(func(ctx context.Context) {
		result, err := a.sync.Sync(ctx)
		if errors.Is(err, apperrors.ErrSyncInProgress) {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Sync failed:", err)
			return
		}
		fmt.Printf("Synced: sent %d, pulled %d, still pending %d\n", result.Sent, result.Pulled, result.StillPending)
	})
	monitor.OnOffline(func(ctx context.Context) {
		fmt.Println("Endpoint unreachable, entries will stay pending until it returns.")
	})

	fmt.Printf("Watching %s every %s. Ctrl-C to stop.\n", a.cfg.APIBaseURL, a.cfg.ProbeInterval)
	if err := monitor.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printTransactions(txns []domain.Transaction) {
	if len(txns) == 0 {
		fmt.Println("No transactions recorded.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tDATE\tKIND\tAMOUNT\tCATEGORY\tMETHOD\tDESCRIPTION\tSTATE")
	for _, txn := range txns {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.LocalKey, txn.Date, txn.Kind, txn.Amount.StringFixed(2),
			txn.Category, txn.PaymentMethod, txn.Description, txn.SyncState)
	}
	w.Flush()
}
