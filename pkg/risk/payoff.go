package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultPayoffEnd truncates the payoff integral's upper tail.
const DefaultPayoffEnd = 10000

// QuadratureOptions control the adaptive Gauss–Legendre integration.
type QuadratureOptions struct {
	// Nodes is the coarse rule size; each panel is also evaluated with 2*Nodes.
	Nodes int
	// Panels is the number of uniform panels the range starts with.
	Panels int
	// AbsTolerance and RelTolerance bound the accepted total error estimate:
	// max(AbsTolerance, RelTolerance*|estimate|).
	AbsTolerance float64
	RelTolerance float64
	// MaxPanels caps subdivision.
	MaxPanels int
}

// DefaultQuadratureOptions mirrors the tolerances of QUADPACK's defaults.
func DefaultQuadratureOptions() QuadratureOptions {
	return QuadratureOptions{
		Nodes:        15,
		Panels:       8,
		AbsTolerance: 1.49e-8,
		RelTolerance: 1.49e-8,
		MaxPanels:    2000,
	}
}

// Estimate is a quadrature result with its error estimate.
type Estimate struct {
	Value     float64
	AbsError  float64
	Tolerance float64
	Panels    int
}

type panel struct {
	lo, hi float64
	value  float64
	err    float64
}

// ExpectedPayoff integrates (x - start) * pdf(x) over [start, end].
//
// The payoff is not clamped: it is non-negative on the integration range only
// because the range begins at start. The result approximates
// E[max(0, X - start)] with the tail above end dropped.
func ExpectedPayoff(g GEV, start, end float64, opts QuadratureOptions) (Estimate, error) {
	if err := g.Validate(); err != nil {
		return Estimate{}, err
	}
	payoff := func(x float64) float64 {
		return (x - start) * g.PDF(x)
	}
	return Integrate(payoff, start, end, opts)
}

// Integrate adaptively integrates f over the finite range [lo, hi]. The panel
// with the largest error estimate is bisected until the total error is within
// tolerance or MaxPanels is reached.
func Integrate(f func(float64) float64, lo, hi float64, opts QuadratureOptions) (Estimate, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(hi > lo) {
		return Estimate{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidBounds, lo, hi)
	}
	if opts.Nodes < 1 || opts.Panels < 1 || opts.MaxPanels < opts.Panels {
		return Estimate{}, fmt.Errorf("invalid quadrature options: %+v", opts)
	}

	eval := func(a, b float64) panel {
		coarse := quad.Fixed(f, a, b, opts.Nodes, nil, 0)
		fine := quad.Fixed(f, a, b, 2*opts.Nodes, nil, 0)
		return panel{lo: a, hi: b, value: fine, err: math.Abs(fine - coarse)}
	}

	width := (hi - lo) / float64(opts.Panels)
	panels := make([]panel, 0, opts.MaxPanels)
	for i := 0; i < opts.Panels; i++ {
		a := lo + float64(i)*width
		b := lo + float64(i+1)*width
		if i == opts.Panels-1 {
			b = hi
		}
		panels = append(panels, eval(a, b))
	}

	for {
		var value, errSum float64
		worst := 0
		for i, p := range panels {
			value += p.value
			errSum += p.err
			if p.err > panels[worst].err {
				worst = i
			}
		}

		tol := math.Max(opts.AbsTolerance, opts.RelTolerance*math.Abs(value))
		if math.IsNaN(value) || math.IsNaN(errSum) {
			return Estimate{}, &IntegrationError{Lower: lo, Upper: hi, Estimate: value, Bound: errSum, Tolerance: tol, Panels: len(panels)}
		}
		if errSum <= tol {
			return Estimate{Value: value, AbsError: errSum, Tolerance: tol, Panels: len(panels)}, nil
		}
		if len(panels) >= opts.MaxPanels {
			return Estimate{}, &IntegrationError{Lower: lo, Upper: hi, Estimate: value, Bound: errSum, Tolerance: tol, Panels: len(panels)}
		}

		p := panels[worst]
		mid := p.lo + (p.hi-p.lo)/2
		panels[worst] = eval(p.lo, mid)
		panels = append(panels, eval(mid, p.hi))
	}
}
