package sim

import "fmt"

// Config is the immutable per-run simulation configuration. It is passed
// by value and never shared mutable state, which is what makes concurrent
// parameter sweeps safe.
type Config struct {
	InitialCapital float64
	FeeRate        float64
	LotSize        int64
}

// DefaultConfig mirrors the production defaults: 100k capital, 6bp fee,
// lots of 100.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 100_000,
		FeeRate:        0.0006,
		LotSize:        100,
	}
}

func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %v", c.InitialCapital)
	}
	if c.FeeRate < 0 || c.FeeRate >= 1 {
		return fmt.Errorf("fee rate must be in [0, 1), got %v", c.FeeRate)
	}
	if c.LotSize <= 0 {
		return fmt.Errorf("lot size must be positive, got %d", c.LotSize)
	}
	return nil
}
