package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds configuration for the on-device app.
type AppConfig struct {
	// DBPath is the SQLite file backing the local durable store.
	DBPath string
	// APIBaseURL is the remote sync endpoint. Empty keeps the app in
	// local-only mode indefinitely.
	APIBaseURL string
	// ProbeInterval is how often the connectivity monitor checks the
	// endpoint while watching.
	ProbeInterval time.Duration
	// RequestTimeout bounds each remote HTTP call.
	RequestTimeout time.Duration
}

// BackendConfig holds configuration for the sync API server.
type BackendConfig struct {
	Port           string
	IsProduction   bool
	AllowedOrigins []string
	// RateLimit is a ulule/limiter formatted rate, e.g. "60-M".
	RateLimit string

	// Ledger store selection: Google Sheets when spreadsheet settings are
	// present, else Postgres when PGSQL_URL is set, else in-memory.
	SpreadsheetID       string
	WorksheetName       string
	GoogleCredsJSON     string
	GoogleCredsFilePath string
	DatabaseURL         string
}

// LoadAppConfig loads device app configuration from the environment,
// reading a .env file first when present.
func LoadAppConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	viper.SetDefault("RF_DB_PATH", "data/ranchofinanzas.db")
	viper.SetDefault("RF_API_BASE_URL", "")
	viper.SetDefault("RF_PROBE_INTERVAL", "30s")
	viper.SetDefault("RF_REQUEST_TIMEOUT", "15s")
	viper.AutomaticEnv()

	cfg := &AppConfig{
		DBPath:     viper.GetString("RF_DB_PATH"),
		APIBaseURL: viper.GetString("RF_API_BASE_URL"),
	}

	probeStr := viper.GetString("RF_PROBE_INTERVAL")
	probe, err := time.ParseDuration(probeStr)
	if err != nil {
		probe = 30 * time.Second
		log.Printf("Warning: Invalid RF_PROBE_INTERVAL (%q). Defaulting to %s.\n", probeStr, probe)
	}
	cfg.ProbeInterval = probe

	timeoutStr := viper.GetString("RF_REQUEST_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid RF_REQUEST_TIMEOUT (%q). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.RequestTimeout = timeout

	if cfg.APIBaseURL == "" {
		log.Println("Warning: RF_API_BASE_URL not set. Running in local-only mode.")
	}

	return cfg, nil
}

// LoadBackendConfig loads API server configuration from the environment.
func LoadBackendConfig() (*BackendConfig, error) {
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("SPREADSHEET_ID", "")
	viper.SetDefault("WORKSHEET_NAME", "Transacciones")
	viper.SetDefault("GOOGLE_CREDENTIALS_JSON", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("PGSQL_URL", "")
	viper.AutomaticEnv()

	cfg := &BackendConfig{
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		RateLimit:           viper.GetString("RATE_LIMIT"),
		SpreadsheetID:       viper.GetString("SPREADSHEET_ID"),
		WorksheetName:       viper.GetString("WORKSHEET_NAME"),
		GoogleCredsJSON:     viper.GetString("GOOGLE_CREDENTIALS_JSON"),
		GoogleCredsFilePath: viper.GetString("GOOGLE_CREDENTIALS_FILE"),
		DatabaseURL:         viper.GetString("PGSQL_URL"),
	}

	cfg.AllowedOrigins = splitOrigins(viper.GetString("ALLOWED_ORIGINS"))
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	if cfg.SpreadsheetID == "" && cfg.DatabaseURL == "" {
		log.Println("Warning: neither SPREADSHEET_ID nor PGSQL_URL set. Using in-memory ledger store (data is lost on restart).")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
