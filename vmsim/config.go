package vmsim

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds simulator configuration
type Config struct {
	Frames    int    `json:"frames"`     // Frame table capacity
	Algorithm string `json:"algorithm"`  // opt, clock, fifo, nru or all
	Refresh   int    `json:"refresh"`    // NRU reference-bit reset interval
	TraceFile string `json:"trace_file"` // Path to the trace

	Quiet    bool   `json:"quiet"`     // Suppress per-reference lines
	LogLevel string `json:"log_level"` // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Frames:    8,
		Algorithm: "opt",
		Refresh:   0,
		Quiet:     false,
		LogLevel:  "warn",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewSimError(ErrCodeInvalidConfig, "LoadConfigFromFile", "failed to read config file", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, NewSimError(ErrCodeInvalidConfig, "LoadConfigFromFile", "failed to parse config file", err)
	}

	return config, nil
}

// ApplyEnv overrides fields from VMSIM_* environment variables. Unparseable
// values are ignored.
func (c *Config) ApplyEnv() {
	if val := os.Getenv("VMSIM_FRAMES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Frames = n
		}
	}

	if val := os.Getenv("VMSIM_ALGORITHM"); val != "" {
		c.Algorithm = val
	}

	if val := os.Getenv("VMSIM_REFRESH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Refresh = n
		}
	}

	if val := os.Getenv("VMSIM_QUIET"); val != "" {
		c.Quiet = val == "true" || val == "1"
	}

	if val := os.Getenv("VMSIM_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	config := DefaultConfig()
	config.ApplyEnv()
	return config
}

// Algorithms returns the policies the configuration selects
func (c *Config) Algorithms() ([]Algorithm, error) {
	if strings.EqualFold(c.Algorithm, "all") {
		return Algorithms, nil
	}
	a, err := ParseAlgorithm(c.Algorithm)
	if err != nil {
		return nil, err
	}
	return []Algorithm{a}, nil
}

// UsesRefresh reports whether the refresh interval applies to this run
func (c *Config) UsesRefresh() bool {
	algorithms, err := c.Algorithms()
	if err != nil {
		return false
	}
	for _, a := range algorithms {
		if a == NRU {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Frames <= 0 {
		return ErrInvalidFrames("Validate", c.Frames)
	}

	if _, err := c.Algorithms(); err != nil {
		return err
	}

	if c.UsesRefresh() && c.Refresh <= 0 {
		return ErrInvalidRefresh("Validate", c.Refresh)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return NewSimError(ErrCodeInvalidConfig, "Validate", err.Error(), nil)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ParseLogLevel converts a configured level name to a slog level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}
