package analysis

import (
	"math"
	"time"

	"github.com/rustyeddy/rebalance/journal"
)

// Options tunes annualization. Zero values fall back to a risk-free rate
// of 0 and 252 trading days per year.
type Options struct {
	RiskFreeRate       float64
	TradingDaysPerYear int
}

func (o Options) tradingDays() float64 {
	if o.TradingDaysPerYear <= 0 {
		return 252
	}
	return float64(o.TradingDaysPerYear)
}

// MaxDrawdown describes the worst peak-to-trough decline of the assets
// series.
type MaxDrawdown struct {
	Ratio      float64 // negative, e.g. -0.23
	Amount     float64 // positive, in account currency
	PeakDate   time.Time
	TroughDate time.Time
}

// Summary is the full performance readout of one run.
type Summary struct {
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	MaxDrawdown          MaxDrawdown

	TotalPnL    float64
	TotalFees   float64
	Trades      int // reconciled buy/sell legs
	FinalAssets float64
}

// Evaluate computes the Summary for an assets series and its PnL records.
func Evaluate(assets []AssetPoint, records []journal.PnLRecord, opts Options) Summary {
	var s Summary

	for _, r := range records {
		s.TotalPnL += r.TotalPnL
		s.TotalFees += r.Fee
		s.Trades += len(r.Details)
	}
	if n := len(assets); n > 0 {
		s.FinalAssets = assets[n-1].Assets
	}

	returns := dailyReturns(assets)
	s.AnnualizedReturn = annualizedReturn(assets, len(returns), opts)
	s.AnnualizedVolatility = stddev(returns) * math.Sqrt(opts.tradingDays())
	s.SharpeRatio = sharpe(returns, opts)
	s.MaxDrawdown = maxDrawdown(assets)
	return s
}

func dailyReturns(assets []AssetPoint) []float64 {
	if len(assets) < 2 {
		return nil
	}
	out := make([]float64, 0, len(assets)-1)
	for i := 1; i < len(assets); i++ {
		prev := assets[i-1].Assets
		if prev == 0 {
			continue
		}
		out = append(out, assets[i].Assets/prev-1)
	}
	return out
}

// annualizedReturn compounds the whole-period growth over the observed
// number of trading days: (final/initial)^(daysPerYear/n) - 1.
func annualizedReturn(assets []AssetPoint, n int, opts Options) float64 {
	if len(assets) < 2 || n == 0 {
		return 0
	}
	initial := assets[0].Assets
	final := assets[len(assets)-1].Assets
	if initial <= 0 {
		return 0
	}
	return math.Pow(final/initial, opts.tradingDays()/float64(n)) - 1
}

// sharpe is the annualized Sharpe ratio over daily excess returns, with
// the risk-free rate de-annualized geometrically.
func sharpe(returns []float64, opts Options) float64 {
	if len(returns) == 0 {
		return 0
	}
	rfDaily := math.Pow(1+opts.RiskFreeRate, 1/opts.tradingDays()) - 1

	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rfDaily
	}

	std := stddev(excess)
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	return mean(excess) / std * math.Sqrt(opts.tradingDays())
}

func maxDrawdown(assets []AssetPoint) MaxDrawdown {
	if len(assets) < 2 {
		return MaxDrawdown{}
	}

	var dd MaxDrawdown
	peak := assets[0]
	for _, p := range assets {
		if p.Assets > peak.Assets {
			peak = p
		}
		if peak.Assets <= 0 {
			continue
		}
		ratio := p.Assets/peak.Assets - 1
		if ratio < dd.Ratio {
			dd.Ratio = ratio
			dd.Amount = peak.Assets - p.Assets
			dd.PeakDate = peak.Date
			dd.TroughDate = p.Date
		}
	}
	return dd
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation (ddof=1).
func stddev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
