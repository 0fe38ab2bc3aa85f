package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const secondsPerDay = 24 * 60 * 60

// Config holds the parameters of a gas price risk run
type Config struct {
	Series   SeriesConfig   `yaml:"series"`
	Coverage CoverageConfig `yaml:"coverage"`
	Contract ContractConfig `yaml:"contract"`
	Payoff   PayoffConfig   `yaml:"payoff"`
	Output   OutputConfig   `yaml:"output"`
}

// SeriesConfig controls the simulated base fee history
type SeriesConfig struct {
	StartBlock int     `yaml:"start_block"`
	EndBlock   int     `yaml:"end_block"` // Exclusive; one fee per block in [start, end)
	MeanFee    float64 `yaml:"mean_fee"`  // Starting and mean-reversion level in Gwei
	Seed       int64   `yaml:"seed"`
}

// CoverageConfig derives the window length used for maxima
type CoverageConfig struct {
	BlockTimeSecs float64 `yaml:"block_time_secs"`
	Days          float64 `yaml:"days"`
}

// ContractConfig holds the insurance terms
type ContractConfig struct {
	MaxBaseFee float64 `yaml:"max_base_fee"` // Threshold in Gwei
	Payout     float64 `yaml:"payout"`
	Markup     float64 `yaml:"markup"` // Admin cost and profit as a fraction of the fair premium
}

// PayoffConfig controls the GEV payoff integral and the fitted density samples
type PayoffConfig struct {
	End           float64 `yaml:"end"` // Upper truncation of the payoff integral
	Tolerance     float64 `yaml:"tolerance"`
	CurvePoints   int     `yaml:"curve_points"`
	HistogramBins int     `yaml:"histogram_bins"`
}

// OutputConfig holds presentation settings
type OutputConfig struct {
	Format       string `yaml:"format"` // text or json
	Details      bool   `yaml:"details"`
	EnableGraphs bool   `yaml:"graph"`
	LogScale     bool   `yaml:"log_scale"`
	Dir          string `yaml:"dir"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the configuration of the reference model
func Default() Config {
	return Config{
		Series: SeriesConfig{
			StartBlock: 1000,
			EndBlock:   400_000,
			MeanFee:    100,
			Seed:       12345,
		},
		Coverage: CoverageConfig{
			BlockTimeSecs: 12,
			Days:          1,
		},
		Contract: ContractConfig{
			MaxBaseFee: 150,
			Payout:     1000,
			Markup:     0.15,
		},
		Payoff: PayoffConfig{
			End:           10000,
			Tolerance:     1.49e-8,
			CurvePoints:   1000,
			HistogramBins: 30,
		},
		Output: OutputConfig{
			Format:   "text",
			Dir:      ".",
			LogLevel: "info",
		},
	}
}

// SeriesLength returns the number of simulated blocks
func (c Config) SeriesLength() int {
	return c.Series.EndBlock - c.Series.StartBlock
}

// CoveragePeriod returns the window length in blocks
func (c Config) CoveragePeriod() int {
	return CoveragePeriod(c.Coverage.BlockTimeSecs, c.Coverage.Days)
}

// CoveragePeriod converts a coverage duration in days to a number of blocks
func CoveragePeriod(blockTimeSecs, days float64) int {
	if blockTimeSecs <= 0 {
		return 0
	}
	return int(math.Round(days * secondsPerDay / blockTimeSecs))
}

// Validate validates the configuration parameters
func (c Config) Validate() error {
	s := c.Series
	if s.StartBlock < 0 {
		return fmt.Errorf("start block (%d) must not be negative", s.StartBlock)
	}
	if s.EndBlock <= s.StartBlock {
		return fmt.Errorf("end block (%d) must be greater than start block (%d)", s.EndBlock, s.StartBlock)
	}
	if !(s.MeanFee > 0) || math.IsInf(s.MeanFee, 0) {
		return fmt.Errorf("mean fee (%.3f) must be positive", s.MeanFee)
	}

	if !(c.Coverage.BlockTimeSecs > 0) {
		return fmt.Errorf("block time (%.3f) must be positive", c.Coverage.BlockTimeSecs)
	}
	if !(c.Coverage.Days > 0) {
		return fmt.Errorf("coverage days (%.3f) must be positive", c.Coverage.Days)
	}
	if c.CoveragePeriod() < 1 {
		return fmt.Errorf("coverage of %.3f days at %.1fs blocks is shorter than one block",
			c.Coverage.Days, c.Coverage.BlockTimeSecs)
	}

	k := c.Contract
	if k.Payout < 0 {
		return fmt.Errorf("payout (%.3f) must not be negative", k.Payout)
	}
	if k.Markup < 0 {
		return fmt.Errorf("markup (%.3f) must not be negative", k.Markup)
	}

	p := c.Payoff
	if p.End <= k.MaxBaseFee {
		return fmt.Errorf("payoff end (%.3f) must be greater than max base fee (%.3f)", p.End, k.MaxBaseFee)
	}
	if !(p.Tolerance > 0) {
		return fmt.Errorf("payoff tolerance (%g) must be positive", p.Tolerance)
	}
	if p.CurvePoints < 2 {
		return fmt.Errorf("curve points (%d) must be at least 2", p.CurvePoints)
	}
	if p.HistogramBins < 1 {
		return fmt.Errorf("histogram bins (%d) must be positive", p.HistogramBins)
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format '%s', must be one of: [text json]", c.Output.Format)
	}

	return nil
}

// Load reads a YAML file over the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// YAML renders the configuration as a YAML document
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
