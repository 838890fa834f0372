package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	PublicURL          string
	APIBaseURL         string
	DatabaseURI        string
	SessionDir         string
	DownloadDir        string
	RequestTimeout     time.Duration
	RequestRate        float64
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
	PrinterType        string
	PrinterDevice      string
	PrinterAddress     string
	PrintCommand       string
	Opener             string
	KafkaBrokers       []string
	KafkaTopic         string
	BlobSecret         string
	BlobTTL            time.Duration
	CORSAllowedOrigins []string
	LogLevel           string
}

const (
	defaultRunAddress      = "127.0.0.1:8090"
	defaultEnvFile         = ".env"
	defaultRequestTimeout  = 30 * time.Second
	defaultRequestRate     = 10.0
	defaultWorkerPoolSize  = 4
	defaultShutdownTimeout = 10 * time.Second
	defaultPrinterType     = "none"
	defaultPrintCommand    = "lp"
	defaultOpener          = "browser"
	defaultKafkaTopic      = "posdocs.events"
	defaultBlobTTL         = 10 * time.Minute
	defaultLogLevel        = "info"

	// minBlobTTL keeps a handle valid past the 60 s open grace window and
	// the print cleanup delay.
	minBlobTTL = 2 * time.Minute
)

// Load parses configuration from flags, environment variables and an optional env file.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	lookup, err := withEnvFile(lookup)
	if err != nil {
		return nil, err
	}

	home, _ := os.UserHomeDir()

	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		PublicURL:          getString(lookup, "PUBLIC_URL", ""),
		APIBaseURL:         getString(lookup, "API_BASE_URL", ""),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		SessionDir:         getString(lookup, "SESSION_DIR", filepath.Join(home, ".posdocs")),
		DownloadDir:        getString(lookup, "DOWNLOAD_DIR", filepath.Join(home, "Downloads")),
		RequestTimeout:     getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		RequestRate:        getFloat(lookup, "REQUEST_RATE", defaultRequestRate),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		PrinterType:        getString(lookup, "PRINTER_TYPE", defaultPrinterType),
		PrinterDevice:      getString(lookup, "PRINTER_DEVICE", ""),
		PrinterAddress:     getString(lookup, "PRINTER_ADDRESS", ""),
		PrintCommand:       getString(lookup, "PRINT_COMMAND", defaultPrintCommand),
		Opener:             getString(lookup, "OPENER", defaultOpener),
		KafkaBrokers:       splitList(getString(lookup, "KAFKA_BROKERS", "")),
		KafkaTopic:         getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		BlobSecret:         getString(lookup, "BLOB_SECRET", ""),
		BlobTTL:            getDuration(lookup, "BLOB_TTL", defaultBlobTTL),
		CORSAllowedOrigins: splitList(getString(lookup, "CORS_ALLOWED_ORIGINS", "")),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("posdocs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.APIBaseURL, "b", cfg.APIBaseURL, "POS backend API base URL")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for task history")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "Externally reachable base URL of this service")
	fs.StringVar(&cfg.SessionDir, "session-dir", cfg.SessionDir, "Directory holding session files")
	fs.StringVar(&cfg.DownloadDir, "download-dir", cfg.DownloadDir, "Directory receiving downloaded documents")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Backend request timeout")
	fs.Float64Var(&cfg.RequestRate, "request-rate", cfg.RequestRate, "Backend requests per second")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent document workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.PrinterType, "printer", cfg.PrinterType, "Raw printer type: none, usb or network")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("BLOB_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read blob secret file: %w", err)
		}
		cfg.BlobSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.RequestRate <= 0 {
		cfg.RequestRate = defaultRequestRate
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.BlobTTL <= 0 {
		cfg.BlobTTL = defaultBlobTTL
	} else if cfg.BlobTTL < minBlobTTL {
		cfg.BlobTTL = minBlobTTL
	}

	if cfg.PublicURL == "" {
		cfg.PublicURL = publicURLFor(cfg.RunAddress)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API base URL must be provided")
	}

	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	switch cfg.PrinterType {
	case "none", "usb", "network":
	default:
		return nil, fmt.Errorf("unsupported printer type %q", cfg.PrinterType)
	}

	return cfg, nil
}

// withEnvFile layers values from an env file below the given lookup. A missing
// default file is ignored; an explicitly configured one must exist.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path, explicit := lookup("ENV_FILE")
	if !explicit || path == "" {
		path = defaultEnvFile
		explicit = false
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file: %w", err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func publicURLFor(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
