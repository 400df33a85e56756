package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 100_000.0, cfg.InitialCapital)
	assert.Equal(t, 0.0006, cfg.FeeRate)
	assert.Equal(t, int64(100), cfg.LotSize)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]Config{
		"zero capital":     {InitialCapital: 0, FeeRate: 0.0006, LotSize: 100},
		"negative capital": {InitialCapital: -1, FeeRate: 0.0006, LotSize: 100},
		"negative fee":     {InitialCapital: 100, FeeRate: -0.1, LotSize: 100},
		"fee of one":       {InitialCapital: 100, FeeRate: 1, LotSize: 100},
		"zero lot":         {InitialCapital: 100, FeeRate: 0.0006, LotSize: 0},
	}
	for name, cfg := range cases {
		assert.Error(t, cfg.Validate(), name)
	}

	ok := Config{InitialCapital: 100, FeeRate: 0, LotSize: 1}
	assert.NoError(t, ok.Validate())
}
