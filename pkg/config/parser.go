package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes the environment variable for every flag, e.g.
// GASRISK_MAX_BASE_FEE for -max-base-fee.
const EnvPrefix = "GASRISK_"

type binding struct {
	name  string
	usage string
	field func(c *Config) any
}

var bindings = []binding{
	{"start-block", "First simulated block", func(c *Config) any { return &c.Series.StartBlock }},
	{"end-block", "Simulated blocks end before this block", func(c *Config) any { return &c.Series.EndBlock }},
	{"mean-fee", "Starting and mean base fee in Gwei", func(c *Config) any { return &c.Series.MeanFee }},
	{"seed", "Random seed for the fee walk", func(c *Config) any { return &c.Series.Seed }},
	{"block-time", "Block time in seconds", func(c *Config) any { return &c.Coverage.BlockTimeSecs }},
	{"coverage-days", "Coverage period in days", func(c *Config) any { return &c.Coverage.Days }},
	{"max-base-fee", "Insured base fee threshold in Gwei", func(c *Config) any { return &c.Contract.MaxBaseFee }},
	{"payout", "Payout when the threshold is exceeded", func(c *Config) any { return &c.Contract.Payout }},
	{"markup", "Admin cost and profit markup (fraction)", func(c *Config) any { return &c.Contract.Markup }},
	{"payoff-end", "Upper bound of the expected payoff integral", func(c *Config) any { return &c.Payoff.End }},
	{"tolerance", "Absolute and relative quadrature tolerance", func(c *Config) any { return &c.Payoff.Tolerance }},
	{"curve-points", "Samples of the fitted density", func(c *Config) any { return &c.Payoff.CurvePoints }},
	{"bins", "Histogram bins for the maxima chart", func(c *Config) any { return &c.Payoff.HistogramBins }},
	{"format", "Output format: text or json", func(c *Config) any { return &c.Output.Format }},
	{"details", "Print fitted parameters and quadrature error", func(c *Config) any { return &c.Output.Details }},
	{"graph", "Generate charts (PNG and HTML)", func(c *Config) any { return &c.Output.EnableGraphs }},
	{"log-scale", "Use logarithmic Y axis for the fee chart", func(c *Config) any { return &c.Output.LogScale }},
	{"out-dir", "Directory for generated charts", func(c *Config) any { return &c.Output.Dir }},
	{"log-level", "Log level: debug, info, warn, error", func(c *Config) any { return &c.Output.LogLevel }},
}

// Parser layers configuration sources: defaults, an optional YAML file,
// environment variables (optionally loaded from .env files) and finally any
// flags set on the command line.
type Parser struct {
	flags     *Config
	flagSet   *pflag.FlagSet
	EnvFiles  []string
	LookupEnv func(string) (string, bool)
}

// NewParser registers the configuration flags on flagSet
func NewParser(flagSet *pflag.FlagSet) *Parser {
	defaults := Default()
	p := &Parser{
		flags:     &defaults,
		flagSet:   flagSet,
		EnvFiles:  []string{".env"},
		LookupEnv: os.LookupEnv,
	}
	p.RegisterFlags()
	return p
}

// RegisterFlags registers all command-line flags
func (p *Parser) RegisterFlags() {
	for _, b := range bindings {
		switch v := b.field(p.flags).(type) {
		case *int:
			p.flagSet.IntVar(v, b.name, *v, b.usage)
		case *int64:
			p.flagSet.Int64Var(v, b.name, *v, b.usage)
		case *float64:
			p.flagSet.Float64Var(v, b.name, *v, b.usage)
		case *bool:
			p.flagSet.BoolVar(v, b.name, *v, b.usage)
		case *string:
			p.flagSet.StringVar(v, b.name, *v, b.usage)
		}
	}
}

// Parse builds the effective configuration. configPath may be empty.
// Flags must already have been parsed.
func (p *Parser) Parse(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.mergeFile(configPath); err != nil {
			return nil, err
		}
	}

	if err := p.loadEnvFiles(); err != nil {
		return nil, err
	}
	if err := p.applyEnv(&cfg); err != nil {
		return nil, err
	}

	for _, b := range bindings {
		if f := p.flagSet.Lookup(b.name); f != nil && f.Changed {
			assign(b.field(&cfg), b.field(p.flags))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (p *Parser) loadEnvFiles() error {
	for _, path := range p.EnvFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

func (p *Parser) applyEnv(cfg *Config) error {
	for _, b := range bindings {
		key := EnvVar(b.name)
		raw, ok := p.LookupEnv(key)
		if !ok || raw == "" {
			continue
		}

		var err error
		switch v := b.field(cfg).(type) {
		case *int:
			*v, err = strconv.Atoi(raw)
		case *int64:
			*v, err = strconv.ParseInt(raw, 10, 64)
		case *float64:
			*v, err = strconv.ParseFloat(raw, 64)
		case *bool:
			*v, err = strconv.ParseBool(raw)
		case *string:
			*v = raw
		}
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", raw, key, err)
		}
	}
	return nil
}

// EnvVar returns the environment variable that overrides a flag
func EnvVar(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func assign(dst, src any) {
	switch d := dst.(type) {
	case *int:
		*d = *src.(*int)
	case *int64:
		*d = *src.(*int64)
	case *float64:
		*d = *src.(*float64)
	case *bool:
		*d = *src.(*bool)
	case *string:
		*d = *src.(*string)
	}
}
