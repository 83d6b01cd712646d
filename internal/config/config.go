package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/javajack/xlimport"
)

const (
	defaultPort     = 8080
	defaultDirName  = "Excel"
	defaultFileName = "testdata.xlsx"
)

// Config holds runtime configuration for the xlimport binaries.
type Config struct {
	File        string
	RowPolicy   xlimport.RowPolicy
	Select      string
	LogLevel    slog.Level
	Port        int
	DatabaseURL string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		File:     DefaultFile(),
		LogLevel: slog.LevelInfo,
		Port:     defaultPort,
	}

	if v := strings.TrimSpace(os.Getenv("XLIMPORT_FILE")); v != "" {
		cfg.File = v
	}

	policy, err := xlimport.ParseRowPolicy(os.Getenv("XLIMPORT_ROW_POLICY"))
	if err != nil {
		return cfg, fmt.Errorf("invalid XLIMPORT_ROW_POLICY: %w", err)
	}
	cfg.RowPolicy = policy

	cfg.Select = strings.TrimSpace(os.Getenv("XLIMPORT_SELECT"))

	if v := strings.TrimSpace(os.Getenv("XLIMPORT_LOG_LEVEL")); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("invalid XLIMPORT_LOG_LEVEL: %w", err)
		}
	}

	if portStr := strings.TrimSpace(os.Getenv("PORT")); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Port = port
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	return cfg, nil
}

// DefaultFile resolves Excel/testdata.xlsx next to the running executable,
// falling back to the working directory.
func DefaultFile() string {
	base := "."
	if exe, err := os.Executable(); err == nil {
		base = filepath.Dir(exe)
	}
	return filepath.Join(base, defaultDirName, defaultFileName)
}

// ListenAddr returns the address the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ImporterOptions translates the configuration into importer options.
func (c Config) ImporterOptions(logger *slog.Logger) []xlimport.Option {
	opts := []xlimport.Option{
		xlimport.WithPath(c.File),
		xlimport.WithRowPolicy(c.RowPolicy),
		xlimport.WithLogger(logger),
	}
	if c.Select != "" {
		opts = append(opts, xlimport.WithSelect(c.Select))
	}
	return opts
}
