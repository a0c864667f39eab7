// Package config provides the application configuration of goestimate.
// Configurations are loaded from TOML files; every value has a default.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Logging  LoggingConfig  `toml:"logging"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Analysis AnalysisConfig `toml:"analysis"`
	Report   ReportConfig   `toml:"report"`
	Server   ServerConfig   `toml:"server"`
}

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"` // JSON log file; stderr text when empty
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Slog maps the level onto log/slog.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CatalogConfig locates the reference catalog.
type CatalogConfig struct {
	// Path of the SQLite catalog file. Empty keeps the catalog in memory.
	Path string `toml:"path"`
}

// AnalysisConfig tunes the estimate.
type AnalysisConfig struct {
	LifecycleHorizonYears int `toml:"lifecycle_horizon_years"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Currency  string `toml:"currency"`
	OutputDir string `toml:"output_dir"`
	Charts    bool   `toml:"charts"`
}

// ServerConfig controls the HTTP estimate service.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string such as "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: LogLevelInfo,
		},
		Analysis: AnalysisConfig{
			LifecycleHorizonYears: 30,
		},
		Report: ReportConfig{
			Currency:  "AED",
			OutputDir: "output",
			Charts:    true,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	if c.Analysis.LifecycleHorizonYears < 1 {
		errs = append(errs, errors.New("analysis: lifecycle_horizon_years must be at least 1"))
	}
	if c.Report.Currency == "" {
		errs = append(errs, errors.New("report: currency is required"))
	}
	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks the logging level.
func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	}
	return fmt.Errorf("level must be one of debug, info, warn, error; got %q", l.Level)
}

// Validate checks the server settings.
func (s *ServerConfig) Validate() error {
	var errs []error

	if s.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if s.ReadTimeout.Duration <= 0 || s.WriteTimeout.Duration <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	if s.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max_body_bytes must be positive"))
	}

	return errors.Join(errs...)
}
