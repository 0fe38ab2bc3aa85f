package analysis

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/gasrisk/pkg/config"
	"github.com/brianbland/gasrisk/pkg/risk"
)

func sampleResult() *Result {
	return &Result{
		RunID:          uuid.MustParse("6f1c2a52-8a4e-4c55-9d8e-0c1f3f7a9b10"),
		Config:         config.Default(),
		CoveragePeriod: 7200,
		Fees:           make([]float64, 399_000),
		Stats:          Stats{Count: 391_801, Mean: 180.456, Variance: 1234.5, Min: 110, Max: 420},
		Quote: risk.Quote{
			Contract:    risk.Contract{Threshold: 150, Payout: 1000, Markup: 0.15},
			Probability: 2.0 / 3.0,
			Premium:     766.6666,
		},
		GEV:            risk.GEV{Shape: -0.12, Loc: 170.5, Scale: 25.25},
		Fit:            risk.FitInfo{Status: "FunctionConvergence", Evaluations: 312, Distinct: 1410},
		ExpectedPayoff: risk.Estimate{Value: 42.126, AbsError: 3e-9, Tolerance: 1.49e-8, Panels: 24},
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSummary(&buf, sampleResult()))

	want := "Mean: 180.46 GWEI\n" +
		"Variance: 1234.50 GWEI\n" +
		"Insurance Premium: 766.67 GWEI\n" +
		"Expected payoff: 42.13\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintDetails(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "6f1c2a52-8a4e-4c55-9d8e-0c1f3f7a9b10")
	assert.Contains(t, out, "7200 blocks")
	assert.Contains(t, out, "0.6667")
	assert.Contains(t, out, "scipy c = 0.1200")
	assert.Contains(t, out, "FunctionConvergence")

	for _, label := range []string{"Threshold", "GEV location", "GEV scale", "Payoff integral"} {
		assert.True(t, strings.Contains(out, label), "missing %q", label)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var got Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "6f1c2a52-8a4e-4c55-9d8e-0c1f3f7a9b10", got.RunID)
	assert.Equal(t, 399_000, got.Blocks)
	assert.Equal(t, 7200, got.CoveragePeriod)
	assert.Equal(t, 180.456, got.Mean)
	assert.Equal(t, 766.6666, got.Premium)
	assert.Equal(t, 42.126, got.ExpectedPayoff)
	assert.Equal(t, -0.12, got.Shape)
}

func TestPrintDetailsShapeAtBound(t *testing.T) {
	r := sampleResult()

	var buf bytes.Buffer
	require.NoError(t, PrintDetails(&buf, r))
	assert.NotContains(t, buf.String(), "lower bound")

	r.Fit.AtShapeBound = true
	buf.Reset()
	require.NoError(t, PrintDetails(&buf, r))
	assert.Contains(t, buf.String(), "shape estimate is at its lower bound")
}
