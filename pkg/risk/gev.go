package risk

import (
	"fmt"
	"math"
)

// gumbelShape is the |shape| below which the Gumbel limit is used.
const gumbelShape = 1e-10

// GEV is a generalized extreme value distribution.
//
// Shape follows the extreme value convention: a positive shape gives a heavy
// (Fréchet) upper tail, a negative shape a bounded (Weibull) one, and zero the
// Gumbel case. SciPy's genextreme uses c = -Shape.
type GEV struct {
	Shape float64
	Loc   float64
	Scale float64
}

// Validate checks that the parameters describe a proper distribution.
func (g GEV) Validate() error {
	if !(g.Scale > 0) || math.IsInf(g.Scale, 0) {
		return fmt.Errorf("gev scale (%v) must be positive and finite", g.Scale)
	}
	if math.IsNaN(g.Shape) || math.IsInf(g.Shape, 0) || math.IsNaN(g.Loc) || math.IsInf(g.Loc, 0) {
		return fmt.Errorf("gev shape (%v) and location (%v) must be finite", g.Shape, g.Loc)
	}
	return nil
}

// SciPyShape returns the shape in scipy.stats.genextreme's sign convention.
func (g GEV) SciPyShape() float64 {
	return -g.Shape
}

// Support returns the interval on which the density is positive.
func (g GEV) Support() (lo, hi float64) {
	switch {
	case math.Abs(g.Shape) < gumbelShape:
		return math.Inf(-1), math.Inf(1)
	case g.Shape > 0:
		return g.Loc - g.Scale/g.Shape, math.Inf(1)
	default:
		return math.Inf(-1), g.Loc - g.Scale/g.Shape
	}
}

// LogPDF returns the log density at x, or -Inf outside the support.
func (g GEV) LogPDF(x float64) float64 {
	z := (x - g.Loc) / g.Scale
	if math.Abs(g.Shape) < gumbelShape {
		return -math.Log(g.Scale) - z - math.Exp(-z)
	}

	u := g.Shape * z
	if u <= -1 {
		return math.Inf(-1)
	}
	logT := math.Log1p(u)
	return -math.Log(g.Scale) - (1+1/g.Shape)*logT - math.Exp(-logT/g.Shape)
}

// PDF returns the density at x.
func (g GEV) PDF(x float64) float64 {
	return math.Exp(g.LogPDF(x))
}

// CDF returns P(X <= x).
func (g GEV) CDF(x float64) float64 {
	z := (x - g.Loc) / g.Scale
	if math.Abs(g.Shape) < gumbelShape {
		return math.Exp(-math.Exp(-z))
	}

	u := g.Shape * z
	if u <= -1 {
		if g.Shape > 0 {
			return 0
		}
		return 1
	}
	return math.Exp(-math.Exp(-math.Log1p(u) / g.Shape))
}

// Quantile returns the inverse CDF at p. It returns NaN for p outside [0, 1].
func (g GEV) Quantile(p float64) float64 {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return math.NaN()
	}
	lo, hi := g.Support()
	if p == 0 {
		return lo
	}
	if p == 1 {
		return hi
	}

	y := -math.Log(p)
	if math.Abs(g.Shape) < gumbelShape {
		return g.Loc - g.Scale*math.Log(y)
	}
	return g.Loc + g.Scale*math.Expm1(-g.Shape*math.Log(y))/g.Shape
}
