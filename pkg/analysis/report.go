package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

// fixed2 formats v with two fractional digits.
func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// PrintSummary prints the four headline figures in order
func PrintSummary(w io.Writer, r *Result) error {
	_, err := fmt.Fprintf(w, "Mean: %s GWEI\nVariance: %s GWEI\nInsurance Premium: %s GWEI\nExpected payoff: %s\n",
		fixed2(r.Stats.Mean),
		fixed2(r.Stats.Variance),
		fixed2(r.Quote.Premium),
		fixed2(r.ExpectedPayoff.Value),
	)
	return err
}

// PrintDetails prints the model inputs and fitted parameters
func PrintDetails(w io.Writer, r *Result) error {
	cfg := r.Config

	rule := strings.Repeat("-", 60)
	fmt.Fprintf(w, "\n%s\nDETAILED ANALYSIS: run %s\n%s\n", rule, r.RunID, rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Blocks\t%d - %d (%d fees)\n", cfg.Series.StartBlock, cfg.Series.EndBlock, len(r.Fees))
	fmt.Fprintf(tw, "Coverage window\t%d blocks (%.2f days at %.0fs)\n", r.CoveragePeriod, cfg.Coverage.Days, cfg.Coverage.BlockTimeSecs)
	fmt.Fprintf(tw, "Maxima\t%d (range %.2f - %.2f GWEI)\n", r.Stats.Count, r.Stats.Min, r.Stats.Max)
	fmt.Fprintf(tw, "Threshold\t%.2f GWEI\n", r.Quote.Contract.Threshold)
	fmt.Fprintf(tw, "Exceedance probability\t%.4f\n", r.Quote.Probability)
	fmt.Fprintf(tw, "Payout\t%s (markup %.1f%%)\n", fixed2(r.Quote.Contract.Payout), r.Quote.Contract.Markup*100)
	fmt.Fprintf(tw, "GEV shape (xi)\t%.4f (scipy c = %.4f)\n", r.GEV.Shape, r.GEV.SciPyShape())
	fmt.Fprintf(tw, "GEV location\t%.4f\n", r.GEV.Loc)
	fmt.Fprintf(tw, "GEV scale\t%.4f\n", r.GEV.Scale)
	fmt.Fprintf(tw, "Fit\t%s after %d evaluations, %d distinct maxima\n", r.Fit.Status, r.Fit.Evaluations, r.Fit.Distinct)
	if r.Fit.AtShapeBound {
		fmt.Fprintf(tw, "Warning\tshape estimate is at its lower bound (-1)\n")
	}
	fmt.Fprintf(tw, "Payoff integral\t[%.2f, %.2f] +/- %.2e over %d panels\n",
		r.Quote.Contract.Threshold, cfg.Payoff.End, r.ExpectedPayoff.AbsError, r.ExpectedPayoff.Panels)
	fmt.Fprintf(tw, "Elapsed\t%s\n", r.Elapsed)
	return tw.Flush()
}

// Summary is the JSON form of a result's scalar outputs
type Summary struct {
	RunID          string  `json:"run_id"`
	Blocks         int     `json:"blocks"`
	CoveragePeriod int     `json:"coverage_period"`
	Mean           float64 `json:"mean_gwei"`
	Variance       float64 `json:"variance_gwei"`
	Probability    float64 `json:"exceedance_probability"`
	Premium        float64 `json:"premium_gwei"`
	ExpectedPayoff float64 `json:"expected_payoff"`
	PayoffError    float64 `json:"expected_payoff_error"`
	Shape          float64 `json:"gev_shape"`
	Loc            float64 `json:"gev_loc"`
	Scale          float64 `json:"gev_scale"`
}

// NewSummary extracts the scalar outputs of r
func NewSummary(r *Result) Summary {
	return Summary{
		RunID:          r.RunID.String(),
		Blocks:         len(r.Fees),
		CoveragePeriod: r.CoveragePeriod,
		Mean:           r.Stats.Mean,
		Variance:       r.Stats.Variance,
		Probability:    r.Quote.Probability,
		Premium:        r.Quote.Premium,
		ExpectedPayoff: r.ExpectedPayoff.Value,
		PayoffError:    r.ExpectedPayoff.AbsError,
		Shape:          r.GEV.Shape,
		Loc:            r.GEV.Loc,
		Scale:          r.GEV.Scale,
	}
}

// WriteJSON writes the summary of r as indented JSON
func WriteJSON(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSummary(r))
}
