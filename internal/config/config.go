// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file,
// a .env file and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// LogLevel is the minimum zap level to log.
	LogLevel string `json:"log_level"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `json:"tls_cert"`
	TLSKeyFile  string `json:"tls_key"`

	// AuditRetention is how long login audit rows are kept.
	AuditRetention time.Duration `json:"-"`
	// AuditInterval is how often expired audit rows are purged.
	AuditInterval time.Duration `json:"-"`
}

// TLSEnabled reports whether both a certificate and a key are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCertFile != "" && o.TLSKeyFile != ""
}

// Parse parses the process command line and environment. Configuration
// errors are fatal.
func Parse() *Options {
	opts, err := ParseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}

// ParseArgs registers flags on fs, parses args and applies overrides in order:
// flags, then the JSON config file, then environment variables (including
// those loaded from a .env file in the working directory).
func ParseArgs(fs *flag.FlagSet, args []string) (*Options, error) {
	options := &Options{}

	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.TLSCertFile, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKeyFile, "tls-key", "", "path to TLS private key")
	fs.DurationVar(&options.AuditRetention, "audit-retention", 30*24*time.Hour, "login audit retention")
	fs.DurationVar(&options.AuditInterval, "audit-interval", time.Hour, "login audit cleanup interval")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	if options.AuditInterval <= 0 {
		return nil, fmt.Errorf("audit interval must be positive, got %s", options.AuditInterval)
	}
	if options.AuditRetention <= 0 {
		return nil, fmt.Errorf("audit retention must be positive, got %s", options.AuditRetention)
	}

	return options, nil
}
