package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

const (
	// eulerGamma is the Euler–Mascheroni constant, the mean of a standard Gumbel.
	eulerGamma = 0.5772156649015329

	// minShape keeps the fit where the likelihood is bounded. Below -1 it
	// grows without limit as the upper endpoint approaches the sample maximum.
	minShape = -1.0

	// shapeBoundTolerance is how close to minShape a fit counts as pinned.
	shapeBoundTolerance = 1e-6

	// infeasible is the objective value for parameters outside the support.
	infeasible = 1e100

	// degenerateSpread is the relative standard deviation treated as zero.
	degenerateSpread = 1e-12
)

// FitInfo describes how a fit converged.
type FitInfo struct {
	Samples          int
	Distinct         int
	NegLogLikelihood float64
	Iterations       int
	Evaluations      int
	Status           string
	// AtShapeBound is set when the shape estimate sits on its lower bound
	// of -1, where the optimum is the constraint rather than the likelihood.
	AtShapeBound bool
}

// FitGEV estimates GEV parameters from maxima by maximum likelihood.
//
// The sample is standardised and collapsed to distinct values with counts
// before optimising, since overlapping windows repeat the same maximum many
// times. Nelder–Mead searches over (shape, location, log scale) starting from
// the Gumbel method-of-moments estimate.
func FitGEV(maxima []float64) (GEV, FitInfo, error) {
	info := FitInfo{Samples: len(maxima)}
	if len(maxima) == 0 {
		return GEV{}, info, &EmptySeriesError{Stage: "gev fit"}
	}

	values, counts := distinctCounts(maxima)
	info.Distinct = len(values)

	mean, std := stat.MeanStdDev(maxima, nil)
	if len(values) < 2 || !(std > degenerateSpread*math.Max(1, math.Abs(mean))) {
		return GEV{}, info, &FitError{
			Reason:   "maxima have near-zero variance",
			Samples:  info.Samples,
			Distinct: info.Distinct,
		}
	}

	z := make([]float64, len(values))
	for i, v := range values {
		z[i] = (v - mean) / std
	}

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			if p[0] <= minShape {
				return infeasible
			}
			g := GEV{Shape: p[0], Loc: p[1], Scale: math.Exp(p[2])}
			var nll float64
			for i, x := range z {
				lp := g.LogPDF(x)
				if math.IsInf(lp, -1) || math.IsNaN(lp) {
					return infeasible
				}
				nll -= counts[i] * lp
			}
			return nll
		},
	}

	scale := math.Sqrt(6) / math.Pi
	initial := []float64{0, -eulerGamma * scale, math.Log(scale)}

	settings := &optimize.Settings{
		MajorIterations: 20_000,
		FuncEvaluations: 60_000,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Relative:   1e-12,
			Iterations: 200,
		},
	}

	result, err := optimize.Minimize(problem, initial, settings, &optimize.NelderMead{})
	if result != nil {
		info.Iterations = result.Stats.MajorIterations
		info.Evaluations = result.Stats.FuncEvaluations
		info.Status = result.Status.String()
		info.NegLogLikelihood = result.F
	}
	if err != nil {
		return GEV{}, info, &FitError{
			Reason:   "optimizer failed",
			Samples:  info.Samples,
			Distinct: info.Distinct,
			Err:      err,
		}
	}
	if result.Status.Early() || result.F >= infeasible || math.IsNaN(result.F) {
		return GEV{}, info, &FitError{
			Reason:   "optimizer did not converge (" + info.Status + ")",
			Samples:  info.Samples,
			Distinct: info.Distinct,
		}
	}

	info.AtShapeBound = result.X[0]-minShape < shapeBoundTolerance

	// Undo the standardisation; the likelihood differs by n*log(std).
	fitted := GEV{
		Shape: result.X[0],
		Loc:   mean + std*result.X[1],
		Scale: std * math.Exp(result.X[2]),
	}
	info.NegLogLikelihood += float64(info.Samples) * math.Log(std)

	if err := fitted.Validate(); err != nil {
		return GEV{}, info, &FitError{
			Reason:   "fitted parameters are invalid",
			Samples:  info.Samples,
			Distinct: info.Distinct,
			Err:      err,
		}
	}

	return fitted, info, nil
}

// distinctCounts returns the sorted distinct values of xs and their counts.
func distinctCounts(xs []float64) ([]float64, []float64) {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	var values, counts []float64
	for _, x := range sorted {
		if n := len(values); n > 0 && values[n-1] == x {
			counts[n-1]++
			continue
		}
		values = append(values, x)
		counts = append(counts, 1)
	}
	return values, counts
}
