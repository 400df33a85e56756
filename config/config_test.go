package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100_000.0, cfg.Run.InitialCapital)
	assert.Equal(t, "momentum", cfg.Strategy.Name)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestYAMLRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := Default()
	cfg.Strategy.Name = "mean-reversion"
	cfg.Strategy.Window = 15
	cfg.Strategy.Threshold = 1.5
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestJSONRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	cfg := Default()
	cfg.Journal = JournalConfig{Type: "sqlite", DBPath: "./run.sqlite"}
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{not config"), 0o644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"missing prices":     func(c *Config) { c.Data.Prices = "" },
		"zero capital":       func(c *Config) { c.Run.InitialCapital = 0 },
		"unknown strategy":   func(c *Config) { c.Strategy.Name = "arbitrage" },
		"bad journal type":   func(c *Config) { c.Journal.Type = "parquet" },
		"csv without dir":    func(c *Config) { c.Journal.Dir = "" },
		"negative year days": func(c *Config) { c.Analysis.TradingDaysPerYear = -1 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}

	sqlite := Default()
	sqlite.Journal = JournalConfig{Type: "sqlite"}
	assert.Error(t, sqlite.Validate(), "sqlite without db_path")
}

func TestSimConfigAndParams(t *testing.T) {
	cfg := Default()
	cfg.Strategy.Lookback = 10
	cfg.Strategy.TopN = 2

	sc := cfg.SimConfig()
	assert.Equal(t, 100_000.0, sc.InitialCapital)
	assert.Equal(t, int64(100), sc.LotSize)

	p := cfg.StrategyParams()
	assert.Equal(t, 10, p.Lookback)
	assert.Equal(t, 2, p.TopN)
}
