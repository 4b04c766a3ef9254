package main

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ghb72/Ranch-Finance/internal/adapters/database/pgsql"
	"github.com/ghb72/Ranch-Finance/internal/adapters/memory"
	"github.com/ghb72/Ranch-Finance/internal/adapters/spreadsheet"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	"github.com/ghb72/Ranch-Finance/internal/dto"
	"github.com/ghb72/Ranch-Finance/internal/handlers"
	"github.com/ghb72/Ranch-Finance/internal/middleware"
	"github.com/ghb72/Ranch-Finance/internal/platform/config"
	"github.com/ghb72/Ranch-Finance/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadBackendConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterValidations(); err != nil {
		logger.Error("Failed to register validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	store, cleanup, err := buildLedgerStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(corsMiddleware(cfg))
	r.Use(rateLimitMiddleware(cfg, logger))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, store)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildLedgerStore picks the backing store from configuration: Google
// Sheets when spreadsheet settings are present, else PostgreSQL, else an
// in-memory store for local development.
func buildLedgerStore(ctx context.Context, cfg *config.BackendConfig, logger *slog.Logger) (portsrepo.LedgerStore, func(), error) {
	noop := func() {}

	if cfg.SpreadsheetID != "" {
		store, err := spreadsheet.NewSheetsLedgerStore(ctx, cfg.SpreadsheetID, cfg.WorksheetName, spreadsheet.Credentials{
			JSON:     cfg.GoogleCredsJSON,
			FilePath: cfg.GoogleCredsFilePath,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using Google Sheets ledger store", slog.String("worksheet", cfg.WorksheetName))
		return store, noop, nil
	}

	if cfg.DatabaseURL != "" {
		if err := pgsql.Migrate(cfg.DatabaseURL); err != nil {
			return nil, noop, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using PostgreSQL ledger store")
		return pgsql.NewPgxLedgerStore(pool), pool.Close, nil
	}

	logger.Warn("Using in-memory ledger store, data is lost on restart")
	return memory.NewLedgerStore(), noop, nil
}

func corsMiddleware(cfg *config.BackendConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if slices.Contains(cfg.AllowedOrigins, "*") {
		// Credentials cannot be combined with a wildcard origin.
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return cors.New(corsCfg)
}

func rateLimitMiddleware(cfg *config.BackendConfig, logger *slog.Logger) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT, falling back to 120-M", slog.String("value", cfg.RateLimit))
		rate, _ = limiter.NewRateFromFormatted("120-M")
	}
	return middleware.RateLimit(limiter.New(limitermem.NewStore(), rate))
}
