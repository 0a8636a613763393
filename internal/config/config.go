// Package config loads catalog server configuration from command-line flags,
// environment variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Ratings  RatingsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        // default: 8080
	ReadTimeout    time.Duration // default: 15s
	WriteTimeout   time.Duration // default: 15s
	IdleTimeout    time.Duration // default: 60s
	RequestTimeout time.Duration // per-request context deadline, default: 30s
	CORSOrigins    []string      // default: *

	// WritesPerMinute caps POST/PUT/PATCH requests per client IP; zero
	// disables the guard.
	WritesPerMinute int // default: 120
	WriteBurst      int // default: 20
}

// DatabaseConfig selects and tunes the relational store.
type DatabaseConfig struct {
	Driver       string // sqlite or postgres
	DSN          string // file path for sqlite, connection URL for postgres
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool // apply pending migrations on startup
}

// CatalogConfig controls catalog write behaviour.
type CatalogConfig struct {
	// AtomicWrites wraps admin submissions (creator, movie, genre junctions)
	// in one transaction. When false every step commits on its own and a
	// failure after the junction delete is reported as a partial failure.
	AtomicWrites bool
	PageSize     int
}

// RatingsConfig limits how often a single viewer may submit ratings.
type RatingsConfig struct {
	RequestsPerMinute int
	Burst             int
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds a Config with the following precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	cfg, _, err := LoadArgs(args)
	return cfg, err
}

// LoadArgs is like Load but also returns the arguments left after the last
// configuration flag, so a command line tool can read a subcommand from them.
func LoadArgs(args []string) (*Config, []string, error) {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	requestTimeout := fs.String("request-timeout", "", "Per-request timeout (default: 30s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated allowed origins (default: *)")

	dbDriver := fs.String("db-driver", "", "Database driver: sqlite or postgres (default: sqlite)")
	dbDSN := fs.String("db-dsn", "", "Database file path or connection URL")
	autoMigrate := fs.String("auto-migrate", "", "Apply pending migrations on startup (default: true)")

	atomicWrites := fs.String("atomic-writes", "", "Wrap multi-step catalog writes in a transaction (default: true)")
	pageSize := fs.String("page-size", "", "Default list page size (default: 24)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := loadEnvFile(*envFile); err != nil {
		return nil, nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),

			WritesPerMinute: getIntConfigValue("", "SERVER_WRITES_PER_MINUTE", 120),
			WriteBurst:      getIntConfigValue("", "SERVER_WRITE_BURST", 20),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getConfigValue(*dbDriver, "DB_DRIVER", DriverSQLite)),
			DSN:          getConfigValue(*dbDSN, "DB_DSN", ""),
			MaxOpenConns: getIntConfigValue("", "DB_MAX_OPEN_CONNS", 0),
			MaxIdleConns: getIntConfigValue("", "DB_MAX_IDLE_CONNS", 0),
			AutoMigrate:  getBoolConfigValue(*autoMigrate, "DB_AUTO_MIGRATE", true),
		},
		Catalog: CatalogConfig{
			AtomicWrites: getBoolConfigValue(*atomicWrites, "CATALOG_ATOMIC_WRITES", true),
			PageSize:     getIntConfigValue(*pageSize, "CATALOG_PAGE_SIZE", 24),
		},
		Ratings: RatingsConfig{
			RequestsPerMinute: getIntConfigValue("", "RATINGS_PER_MINUTE", 30),
			Burst:             getIntConfigValue("", "RATINGS_BURST", 10),
		},
	}

	durations := []struct {
		name   string
		flag   string
		envKey string
		def    string
		dst    *time.Duration
	}{
		{"read timeout", *readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{"write timeout", *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{"idle timeout", *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{"request timeout", *requestTimeout, "SERVER_REQUEST_TIMEOUT", "30s", &cfg.Server.RequestTimeout},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid %s %q: %w", d.name, raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.applyDatabaseDefaults(); err != nil {
		return nil, nil, fmt.Errorf("invalid database settings: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, fs.Args(), nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("invalid database driver: %q (must be sqlite or postgres)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database DSN cannot be empty")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.RequestTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("invalid page size: %d", c.Catalog.PageSize)
	}

	if c.Ratings.RequestsPerMinute <= 0 || c.Ratings.Burst <= 0 {
		return errors.New("rating rate limit must be positive")
	}

	return nil
}

// applyDatabaseDefaults fills the DSN and pool sizes for the chosen driver.
// SQLite serialises writers, so its pool stays small.
func (c *Config) applyDatabaseDefaults() error {
	if c.Database.Driver == DriverSQLite {
		path, err := expandPath(c.Database.DSN, filepath.Join("data", "catalog.db"))
		if err != nil {
			return err
		}
		c.Database.DSN = path
		if c.Database.MaxOpenConns == 0 {
			c.Database.MaxOpenConns = 4
		}
		if c.Database.MaxIdleConns == 0 {
			c.Database.MaxIdleConns = 2
		}
		return nil
	}

	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 16
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 4
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is used instead.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		path = defaultPath
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// loadEnvFile copies the .env file into the environment for every key whose
// variable is unset or blank. A blank variable counts as unset here, the same
// as in getConfigValue. A missing file is fine.
func loadEnvFile(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	for key, value := range values {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s from env file: %w", key, err)
		}
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1" and "yes" (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
