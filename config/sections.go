package config

import (
	"fmt"
	"net"
	"runtime"

	"github.com/rs/zerolog"
)

// LoggingConfig selects level and output format of the zerolog logger.
type LoggingConfig struct {
	// Level is any zerolog level name.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

// SetDefaults selects info level and JSON output.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = zerolog.InfoLevel.String()
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate rejects unknown level names and formats.
func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("config: logging.format: unknown format %q", c.Format)
	}

	return nil
}

// MetricsConfig controls the Prometheus observer and its HTTP endpoint.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Addr      string `json:"addr"`
	Namespace string `json:"namespace"`
}

// SetDefaults sets the listen address to :2112 and the namespace to pltr.
func (c *MetricsConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":2112"
	}
	if c.Namespace == "" {
		c.Namespace = "pltr"
	}
}

// Validate checks Addr is host:port when metrics are enabled.
func (c MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("config: metrics.addr: %w", err)
	}

	return nil
}

// BenchConfig tunes the benchmark driver.
type BenchConfig struct {
	// Workers bounds concurrently solved instances; 0 means GOMAXPROCS.
	Workers int `json:"workers"`
}

// SetDefaults uses GOMAXPROCS workers.
func (c *BenchConfig) SetDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// Validate requires at least one worker.
func (c BenchConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: bench.workers must be at least 1, got %d", c.Workers)
	}

	return nil
}
