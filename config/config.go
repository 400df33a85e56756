// Package config loads and validates run configuration files. A file
// configures exactly one run; the values are copied into immutable
// per-run structs before any simulation starts.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/rebalance/sim"
	"github.com/rustyeddy/rebalance/strategy"
)

// Config is the complete configuration of one backtest run.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Run      RunConfig      `json:"run" yaml:"run"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
}

// DataConfig points at the input price table.
type DataConfig struct {
	Prices string `json:"prices" yaml:"prices"`
}

// RunConfig contains the simulation parameters.
type RunConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	FeeRate        float64 `json:"fee_rate" yaml:"fee_rate"`
	LotSize        int64   `json:"lot_size" yaml:"lot_size"`
}

// StrategyConfig names the strategy variant and its tunables. Variants
// read only their own fields; zero values use the variant defaults.
type StrategyConfig struct {
	Name string `json:"name" yaml:"name"`

	Lookback int `json:"lookback,omitempty" yaml:"lookback,omitempty"`
	TopN     int `json:"top_n,omitempty" yaml:"top_n,omitempty"`

	Window    int     `json:"window,omitempty" yaml:"window,omitempty"`
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`

	Period     int     `json:"period,omitempty" yaml:"period,omitempty"`
	Overbought float64 `json:"overbought,omitempty" yaml:"overbought,omitempty"`
	Oversold   float64 `json:"oversold,omitempty" yaml:"oversold,omitempty"`
}

// JournalConfig selects the persistence backend.
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// AnalysisConfig tunes the performance readout.
type AnalysisConfig struct {
	RiskFreeRate       float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	TradingDaysPerYear int     `json:"trading_days_per_year" yaml:"trading_days_per_year"`
	ChartFile          string  `json:"chart_file,omitempty" yaml:"chart_file,omitempty"`
	ReportFile         string  `json:"report_file,omitempty" yaml:"report_file,omitempty"`
}

// SimConfig copies the run parameters into the simulator's immutable
// config value.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		InitialCapital: c.Run.InitialCapital,
		FeeRate:        c.Run.FeeRate,
		LotSize:        c.Run.LotSize,
	}
}

// StrategyParams copies the strategy tunables.
func (c *Config) StrategyParams() strategy.Params {
	return strategy.Params{
		Lookback:   c.Strategy.Lookback,
		TopN:       c.Strategy.TopN,
		Window:     c.Strategy.Window,
		Threshold:  c.Strategy.Threshold,
		Period:     c.Strategy.Period,
		Overbought: c.Strategy.Overbought,
		Oversold:   c.Strategy.Oversold,
	}
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, choosing YAML or JSON by extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Data.Prices == "" {
		return fmt.Errorf("data.prices is required")
	}
	if err := c.SimConfig().Validate(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if _, err := strategy.ByName(c.Strategy.Name, c.StrategyParams()); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.Dir == "" {
			return fmt.Errorf("journal.dir required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Analysis.TradingDaysPerYear < 0 {
		return fmt.Errorf("analysis.trading_days_per_year must not be negative")
	}
	return nil
}

// Default returns a configuration with the production defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{Prices: "./prices.csv"},
		Run: RunConfig{
			InitialCapital: 100_000,
			FeeRate:        0.0006,
			LotSize:        100,
		},
		Strategy: StrategyConfig{Name: "momentum", Lookback: 30, TopN: 3},
		Journal:  JournalConfig{Type: "csv", Dir: "./out"},
		Analysis: AnalysisConfig{TradingDaysPerYear: 252},
	}
}
