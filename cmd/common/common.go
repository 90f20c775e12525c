// Package common provides shared utilities for DC-net algebra commands.
//
// This package contains helpers used across the command binaries:
//
//   - YAML configuration loading with defaults
//   - Structured logger construction
//   - Shared secret parsing
package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/flashbots/dcnet/crypto"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of the dcalg command.
type Config struct {
	Log LogConfig `yaml:"log"`
	Pad PadConfig `yaml:"pad"`
}

// LogConfig selects the logger level and format.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// JSON switches the handler from text to JSON output.
	JSON bool `yaml:"json"`
}

// PadConfig describes a pad derivation.
type PadConfig struct {
	// Round is the round number the pads are derived for.
	Round uint32 `yaml:"round"`

	// Length is the pad size: bytes for XOR pads, elements for field masks.
	Length int `yaml:"length"`

	// Field derives field masks instead of XOR bytes.
	Field bool `yaml:"field"`

	// SharedSecrets are hex-encoded secrets, one pad per secret.
	SharedSecrets []string `yaml:"shared_secrets"`

	// Values are optional field elements to blind with the derived masks.
	// Only used together with Field.
	Values []crypto.Fp `yaml:"values"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Pad: PadConfig{Round: 1, Length: 32},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// ParseSharedSecrets decodes hex-encoded shared secrets.
func ParseSharedSecrets(hexSecrets []string) ([]crypto.SharedKey, error) {
	secrets := make([]crypto.SharedKey, 0, len(hexSecrets))
	for i, s := range hexSecrets {
		secret, err := crypto.NewSharedKeyFromString(s)
		if err != nil {
			return nil, fmt.Errorf("shared secret %d: invalid hex: %w", i, err)
		}
		secrets = append(secrets, secret)
	}
	return secrets, nil
}

// NewLogger builds a slog logger writing to w.
func NewLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
