package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// Store selects and configures the local persistent store.
type Store struct {
	Backend     string
	FilePath    string
	RedisURL    string
	DatabaseURL string
}

// Gemini configures the extraction API.
type Gemini struct {
	APIKey        string
	APIBase       string
	PrimaryModel  string
	FallbackModel string
	Timeout       time.Duration
}

// Sheets configures the spreadsheet read API and the relay defaults.
type Sheets struct {
	APIBase  string
	SheetID  string
	APIKey   string
	RelayURL string
	Timeout  time.Duration
}

// Company is the default identity printed on slips.
type Company struct {
	Name    string
	Address string
	GSTIN   string
	Phone   string
	Email   string
	LogoURL string
}

// Retry configures the backoff executor shared by both remote collaborators.
type Retry struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Config is the process configuration. Settings stored by the user override the
// environment-derived defaults in Gemini, Sheets, Company and the prefixes.
type Config struct {
	Server            Server
	Store             Store
	Gemini            Gemini
	Sheets            Sheets
	Company           Company
	Retry             Retry
	SlipPrefix        string
	InvoicePrefix     string
	SyncFailurePolicy string
}

// Load reads an optional .env file and builds a Config from the environment.
// Variables already present in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: Server{
			Addr:            getEnv("DISPATCHFLOW_ADDR", ":8080"),
			ShutdownTimeout: 10 * time.Second,
			LogLevel:        getEnv("LOG_LEVEL", "info"),
		},
		Store: Store{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", StoreFile)),
			FilePath:    getEnv("STORE_FILE", "dispatchflow.json"),
			RedisURL:    os.Getenv("REDIS_URL"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Gemini: Gemini{
			APIKey:        os.Getenv("GEMINI_API_KEY"),
			APIBase:       getEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta/models"),
			PrimaryModel:  getEnv("GEMINI_PRIMARY_MODEL", "gemini-2.5-flash"),
			FallbackModel: getEnv("GEMINI_FALLBACK_MODEL", "gemini-1.5-flash"),
			Timeout:       60 * time.Second,
		},
		Sheets: Sheets{
			APIBase:  getEnv("SHEETS_API_BASE", "https://sheets.googleapis.com/v4/spreadsheets"),
			SheetID:  os.Getenv("GOOGLE_SHEETS_ID"),
			APIKey:   os.Getenv("GOOGLE_SHEETS_API_KEY"),
			RelayURL: os.Getenv("SHEETS_RELAY_URL"),
			Timeout:  30 * time.Second,
		},
		Company: Company{
			Name:    getEnv("COMPANY_NAME", "Your Company Name"),
			Address: getEnv("COMPANY_ADDRESS", "123 Industrial Area, City - 000000"),
			GSTIN:   getEnv("COMPANY_GSTIN", "00XXXXX0000X0X0"),
			Phone:   getEnv("COMPANY_PHONE", "+91 00000 00000"),
			Email:   getEnv("COMPANY_EMAIL", "dispatch@company.com"),
			LogoURL: os.Getenv("COMPANY_LOGO_URL"),
		},
		SlipPrefix:        getEnv("SLIP_PREFIX", "DS"),
		InvoicePrefix:     getEnv("INVOICE_PREFIX", "INV"),
		SyncFailurePolicy: strings.ToLower(getEnv("SYNC_FAILURE_POLICY", "rollback")),
	}

	attempts, err := getInt("RETRY_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}
	baseDelay, err := getDuration("RETRY_BASE_DELAY", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	maxDelay, err := getDuration("RETRY_MAX_DELAY", 8*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Retry = Retry{Attempts: attempts, BaseDelay: baseDelay, MaxDelay: maxDelay}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("STORE_BACKEND=redis requires REDIS_URL")
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
