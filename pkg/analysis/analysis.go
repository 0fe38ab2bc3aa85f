package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/brianbland/gasrisk/pkg/config"
	"github.com/brianbland/gasrisk/pkg/randomizer"
	"github.com/brianbland/gasrisk/pkg/risk"
	"github.com/brianbland/gasrisk/pkg/series"
)

// Stats summarises the maxima series
type Stats struct {
	Count    int
	Mean     float64
	Variance float64 // Population variance
	Min      float64
	Max      float64
}

// Result contains everything computed for one run
type Result struct {
	RunID          uuid.UUID
	Config         config.Config
	CoveragePeriod int
	Fees           []float64
	Maxima         []float64
	Stats          Stats
	Quote          risk.Quote
	GEV            risk.GEV
	Fit            risk.FitInfo
	ExpectedPayoff risk.Estimate
	Curve          []risk.Point
	Histogram      []risk.Bin
	Elapsed        time.Duration
}

// Analyzer runs the gas price risk pipeline
type Analyzer struct {
	config config.Config
	source randomizer.Source
	log    zerolog.Logger
}

// NewAnalyzer creates a new analyzer. A nil source uses the configured seed.
func NewAnalyzer(cfg config.Config, src randomizer.Source, log zerolog.Logger) *Analyzer {
	if src == nil {
		src = randomizer.NewSeeded(cfg.Series.Seed)
	}
	return &Analyzer{config: cfg, source: src, log: log}
}

// Run simulates the fee history, extracts coverage-window maxima, prices the
// contract and fits the GEV model. Any stage failure aborts the run; the
// returned error names the inputs that caused it.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	cfg := a.config

	res := &Result{
		RunID:          uuid.New(),
		Config:         cfg,
		CoveragePeriod: cfg.CoveragePeriod(),
	}
	log := a.log.With().Str("run_id", res.RunID.String()).Logger()

	length := cfg.SeriesLength()
	fees, err := series.Generate(length, cfg.Series.MeanFee, a.source)
	if err != nil {
		return nil, fmt.Errorf("failed to generate fee series (length %d, mean fee %.3f): %w",
			length, cfg.Series.MeanFee, err)
	}
	res.Fees = fees
	log.Debug().Int("length", length).Float64("mean_fee", cfg.Series.MeanFee).Msg("fee series generated")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxima, err := series.WindowedMax(fees, res.CoveragePeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to extract maxima (series length %d, window %d): %w",
			len(fees), res.CoveragePeriod, err)
	}
	res.Maxima = maxima
	res.Stats = summarize(maxima)
	log.Debug().
		Int("window", res.CoveragePeriod).
		Int("maxima", len(maxima)).
		Float64("mean", res.Stats.Mean).
		Float64("variance", res.Stats.Variance).
		Msg("windowed maxima extracted")

	contract := risk.Contract{
		Threshold: cfg.Contract.MaxBaseFee,
		Payout:    cfg.Contract.Payout,
		Markup:    cfg.Contract.Markup,
	}
	res.Quote, err = risk.PriceContract(maxima, contract)
	if err != nil {
		return nil, fmt.Errorf("failed to price contract (threshold %.3f, payout %.3f, markup %.3f): %w",
			contract.Threshold, contract.Payout, contract.Markup, err)
	}
	log.Debug().
		Float64("probability", res.Quote.Probability).
		Float64("premium", res.Quote.Premium).
		Msg("contract priced")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.GEV, res.Fit, err = risk.FitGEV(maxima)
	if err != nil {
		return nil, fmt.Errorf("failed to fit GEV to %d maxima: %w", len(maxima), err)
	}
	log.Debug().
		Float64("shape", res.GEV.Shape).
		Float64("loc", res.GEV.Loc).
		Float64("scale", res.GEV.Scale).
		Int("evaluations", res.Fit.Evaluations).
		Str("status", res.Fit.Status).
		Msg("gev fitted")
	if res.Fit.AtShapeBound {
		log.Warn().
			Float64("shape", res.GEV.Shape).
			Int("distinct", res.Fit.Distinct).
			Msg("gev shape pinned at its lower bound")
	}

	opts := risk.DefaultQuadratureOptions()
	opts.AbsTolerance = cfg.Payoff.Tolerance
	opts.RelTolerance = cfg.Payoff.Tolerance
	res.ExpectedPayoff, err = risk.ExpectedPayoff(res.GEV, contract.Threshold, cfg.Payoff.End, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to integrate payoff over [%.3f, %.3f] (shape %.4f, loc %.3f, scale %.3f): %w",
			contract.Threshold, cfg.Payoff.End, res.GEV.Shape, res.GEV.Loc, res.GEV.Scale, err)
	}

	res.Curve, err = risk.DensityCurve(res.GEV, res.Stats.Min, res.Stats.Max, cfg.Payoff.CurvePoints)
	if err != nil {
		return nil, fmt.Errorf("failed to sample fitted density: %w", err)
	}
	res.Histogram, err = risk.Histogram(maxima, cfg.Payoff.HistogramBins)
	if err != nil {
		return nil, fmt.Errorf("failed to bin maxima: %w", err)
	}

	res.Elapsed = time.Since(started)
	log.Info().
		Int("blocks", length).
		Int("window", res.CoveragePeriod).
		Float64("premium", res.Quote.Premium).
		Float64("expected_payoff", res.ExpectedPayoff.Value).
		Dur("elapsed", res.Elapsed).
		Msg("analysis complete")

	return res, nil
}

func summarize(values []float64) Stats {
	mean, variance := stat.PopMeanVariance(values, nil)
	return Stats{
		Count:    len(values),
		Mean:     mean,
		Variance: variance,
		Min:      floats.Min(values),
		Max:      floats.Max(values),
	}
}
