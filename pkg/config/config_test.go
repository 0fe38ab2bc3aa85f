package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, env map[string]string, args ...string) *Parser {
	t.Helper()

	fs := pflag.NewFlagSet("gasrisk", pflag.ContinueOnError)
	p := NewParser(fs)
	p.EnvFiles = nil
	p.LookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	require.NoError(t, fs.Parse(args))
	return p
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 399_000, cfg.SeriesLength())
	assert.Equal(t, 7200, cfg.CoveragePeriod())
	assert.Equal(t, 150.0, cfg.Contract.MaxBaseFee)
	assert.Equal(t, 0.15, cfg.Contract.Markup)
	assert.Equal(t, 10000.0, cfg.Payoff.End)
}

func TestCoveragePeriod(t *testing.T) {
	assert.Equal(t, 7200, CoveragePeriod(12, 1))
	assert.Equal(t, 50400, CoveragePeriod(12, 7))
	assert.Equal(t, 43200, CoveragePeriod(2, 1))
	assert.Equal(t, 0, CoveragePeriod(0, 1))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative start", func(c *Config) { c.Series.StartBlock = -1 }},
		{"empty range", func(c *Config) { c.Series.EndBlock = c.Series.StartBlock }},
		{"zero mean fee", func(c *Config) { c.Series.MeanFee = 0 }},
		{"zero block time", func(c *Config) { c.Coverage.BlockTimeSecs = 0 }},
		{"negative days", func(c *Config) { c.Coverage.Days = -1 }},
		{"sub-block coverage", func(c *Config) { c.Coverage.Days = 1e-6 }},
		{"negative payout", func(c *Config) { c.Contract.Payout = -5 }},
		{"negative markup", func(c *Config) { c.Contract.Markup = -0.1 }},
		{"payoff end below threshold", func(c *Config) { c.Payoff.End = 100 }},
		{"zero tolerance", func(c *Config) { c.Payoff.Tolerance = 0 }},
		{"single curve point", func(c *Config) { c.Payoff.CurvePoints = 1 }},
		{"no bins", func(c *Config) { c.Payoff.HistogramBins = 0 }},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gasrisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
series:
  end_block: 50000
  seed: 7
contract:
  max_base_fee: 200
  markup: 0.2
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50000, cfg.Series.EndBlock)
	assert.Equal(t, int64(7), cfg.Series.Seed)
	assert.Equal(t, 200.0, cfg.Contract.MaxBaseFee)
	assert.Equal(t, 0.2, cfg.Contract.Markup)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1000, cfg.Series.StartBlock)
	assert.Equal(t, 1000.0, cfg.Contract.Payout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Series.Seed = 99
	cfg.Output.EnableGraphs = true

	data, err := cfg.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParserPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gasrisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contract:\n  payout: 500\n  max_base_fee: 120\n"), 0o644))

	env := map[string]string{
		"GASRISK_PAYOUT": "750",
		"GASRISK_SEED":   "42",
	}
	p := newTestParser(t, env, "--seed=9", "--graph")

	cfg, err := p.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, 120.0, cfg.Contract.MaxBaseFee, "file")
	assert.Equal(t, 750.0, cfg.Contract.Payout, "env over file")
	assert.Equal(t, int64(9), cfg.Series.Seed, "flag over env")
	assert.True(t, cfg.Output.EnableGraphs)
	assert.Equal(t, 0.15, cfg.Contract.Markup, "default")
}

func TestParserUnsetFlagsDoNotOverride(t *testing.T) {
	p := newTestParser(t, map[string]string{"GASRISK_MEAN_FEE": "80"})

	cfg, err := p.Parse("")
	require.NoError(t, err)
	assert.Equal(t, 80.0, cfg.Series.MeanFee)
}

func TestParserInvalidEnv(t *testing.T) {
	p := newTestParser(t, map[string]string{"GASRISK_END_BLOCK": "lots"})

	_, err := p.Parse("")
	assert.ErrorContains(t, err, "GASRISK_END_BLOCK")
}

func TestParserValidates(t *testing.T) {
	p := newTestParser(t, nil, "--markup=-1")

	_, err := p.Parse("")
	assert.ErrorContains(t, err, "markup")
}

func TestParserLoadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GASRISK_BINS=12\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GASRISK_BINS") })

	fs := pflag.NewFlagSet("gasrisk", pflag.ContinueOnError)
	p := NewParser(fs)
	p.EnvFiles = []string{path, filepath.Join(t.TempDir(), "absent.env")}
	require.NoError(t, fs.Parse(nil))

	cfg, err := p.Parse("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Payoff.HistogramBins)
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "GASRISK_MAX_BASE_FEE", EnvVar("max-base-fee"))
}
