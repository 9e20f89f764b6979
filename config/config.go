package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/dali/configgen"
	"github.com/rustyeddy/dali/historical"
	"github.com/rustyeddy/dali/pkg/logger"
	"gopkg.in/yaml.v3"
)

// SourceBinanceCSV selects the Binance.com CSV loader.
const SourceBinanceCSV = "binance_com_csv"

// Config represents a complete dali run
type Config struct {
	Sources   []SourceConfig    `json:"sources" yaml:"sources"`
	Pricing   PricingConfig     `json:"pricing" yaml:"pricing"`
	Headers   configgen.Headers `json:"headers" yaml:"headers"`
	Output    OutputConfig      `json:"output" yaml:"output"`
	Journal   JournalConfig     `json:"journal" yaml:"journal"`
	Strict    bool              `json:"strict" yaml:"strict"`
	ExtraFiat []string          `json:"extra_fiat,omitempty" yaml:"extra_fiat,omitempty"`
	Log       LogConfig         `json:"log" yaml:"log"`
}

// SourceConfig describes one transaction source
type SourceConfig struct {
	Type           string `json:"type" yaml:"type"`
	Holder         string `json:"holder" yaml:"holder"`
	AutoinvestFile string `json:"autoinvest_file,omitempty" yaml:"autoinvest_file,omitempty"`
	BethethFile    string `json:"betheth_file,omitempty" yaml:"betheth_file,omitempty"`
	NativeFiat     string `json:"native_fiat,omitempty" yaml:"native_fiat,omitempty"`
}

// PricingConfig controls the spot price pass. With no bars the pass is skipped.
type PricingConfig struct {
	Strategy string      `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Bars     []BarConfig `json:"bars,omitempty" yaml:"bars,omitempty"`
}

// BarConfig points at a candle CSV for one asset
type BarConfig struct {
	Asset string `json:"asset" yaml:"asset"`
	File  string `json:"file" yaml:"file"`
}

// OutputConfig locates the generated artifact
type OutputConfig struct {
	Dir    string `json:"dir" yaml:"dir"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Name   string `json:"name" yaml:"name"`
}

// JournalConfig contains journaling parameters. An empty type disables it.
type JournalConfig struct {
	Type   string `json:"type,omitempty" yaml:"type,omitempty"` // "csv" or "sqlite"
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Pretty bool   `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// ParseStrategy returns the configured strategy. Empty means nearest.
func (p PricingConfig) ParseStrategy() (historical.Strategy, error) {
	if p.Strategy == "" {
		return historical.Nearest, nil
	}
	return historical.ParseStrategy(p.Strategy)
}

// OutputSpec converts the output section for configgen.
func (o OutputConfig) OutputSpec() configgen.Output {
	return configgen.Output{Dir: o.Dir, Prefix: o.Prefix, Name: o.Name}
}

// LoggerConfig converts the log section for pkg/logger.
func (l LogConfig) LoggerConfig() logger.Config {
	return logger.Config{Level: l.Level, Pretty: l.Pretty}
}

// LoadFromFile loads configuration from a file (YAML or JSON), applies
// environment overrides and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnv reads KEY=value pairs from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from DALI_LOG_LEVEL, DALI_OUTPUT_DIR and
// DALI_STRICT when they are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("DALI_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("DALI_OUTPUT_DIR"); ok && v != "" {
		c.Output.Dir = v
	}
	if v, ok := os.LookupEnv("DALI_STRICT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DALI_STRICT: %w", err)
		}
		c.Strict = b
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	for i, s := range c.Sources {
		if err := s.validate(); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	if _, err := c.Pricing.ParseStrategy(); err != nil {
		return fmt.Errorf("pricing.strategy: %w", err)
	}
	for i, b := range c.Pricing.Bars {
		if b.Asset == "" || b.File == "" {
			return fmt.Errorf("pricing.bars[%d]: asset and file are required", i)
		}
	}
	if c.Output.Name == "" {
		return fmt.Errorf("output.name is required")
	}
	switch c.Journal.Type {
	case "":
	case "csv":
		if c.Journal.File == "" {
			return fmt.Errorf("journal file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func (s SourceConfig) validate() error {
	switch s.Type {
	case SourceBinanceCSV:
	default:
		return fmt.Errorf("unknown source type %q", s.Type)
	}
	if strings.TrimSpace(s.Holder) == "" {
		return fmt.Errorf("holder is required")
	}
	if s.AutoinvestFile == "" && s.BethethFile == "" {
		return fmt.Errorf("at least one of autoinvest_file or betheth_file is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Sources: []SourceConfig{
			{
				Type:           SourceBinanceCSV,
				Holder:         "alice",
				AutoinvestFile: "./input/binance_autoinvest.csv",
				BethethFile:    "./input/binance_betheth.csv",
				NativeFiat:     "USD",
			},
		},
		Pricing: PricingConfig{
			Strategy: string(historical.Nearest),
		},
		Headers: configgen.Headers{
			In:    map[string]any{},
			Out:   map[string]any{},
			Intra: map[string]any{},
		},
		Output: OutputConfig{
			Dir:  "./output",
			Name: "crypto_data.json",
		},
		Journal: JournalConfig{
			Type: "csv",
			File: "./output/journal.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
