package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/MeKo-Tech/mosaic/internal/assembler"
)

// Config represents the complete configuration for the mosaic application.
// It covers all commands (assemble, serve) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Assembly configuration
	Assembly AssemblyConfig `mapstructure:"assembly" yaml:"assembly" json:"assembly"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// AssemblyConfig contains document assembly settings.
type AssemblyConfig struct {
	Threshold  float64 `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	Origin     string  `mapstructure:"origin" yaml:"origin" json:"origin"`
	MaxWorkers int     `mapstructure:"max_workers" yaml:"max_workers" json:"max_workers"`
	CleanText  bool    `mapstructure:"clean_text" yaml:"clean_text" json:"clean_text"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyMB       int64  `mapstructure:"max_body_mb" yaml:"max_body_mb" json:"max_body_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Assembly: AssemblyConfig{
			Threshold:  assembler.DefaultOverlapThreshold,
			Origin:     assembler.DefaultDetectionOrigin,
			MaxWorkers: runtime.NumCPU(),
			CleanText:  false,
		},
		Output: OutputConfig{
			Format: "json",
			File:   "",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxBodyMB:       50,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"json", "markdown", "text"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Assembly.Threshold <= 0 || c.Assembly.Threshold >= 1 {
		return fmt.Errorf("invalid assembly threshold: %v (must be in (0, 1))", c.Assembly.Threshold)
	}
	if c.Assembly.MaxWorkers <= 0 {
		return fmt.Errorf("invalid assembly max workers: %d (must be positive)", c.Assembly.MaxWorkers)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxBodyMB <= 0 {
		return fmt.Errorf("invalid max body size: %d (must be positive)", c.Server.MaxBodyMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}

	return nil
}

// ToAssemblerConfig converts the config to the assembler's configuration.
func (c *Config) ToAssemblerConfig() assembler.Config {
	cfg := assembler.DefaultConfig()
	cfg.Threshold = c.Assembly.Threshold
	cfg.Origin = c.Assembly.Origin
	cfg.CleanText = c.Assembly.CleanText
	return cfg
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
