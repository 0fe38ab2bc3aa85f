package risk

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point is a density sample.
type Point struct {
	X       float64
	Density float64
}

// Bin is one histogram bar normalised so that the bars integrate to one.
type Bin struct {
	Lower   float64
	Upper   float64
	Count   int
	Density float64
}

// Center returns the midpoint of the bin.
func (b Bin) Center() float64 {
	return b.Lower + (b.Upper-b.Lower)/2
}

// DensityCurve samples g's density at n evenly spaced points on [lo, hi].
func DensityCurve(g GEV, lo, hi float64, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("density curve needs at least 2 points, got %d", n)
	}
	if !(hi > lo) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidBounds, lo, hi)
	}

	xs := floats.Span(make([]float64, n), lo, hi)
	curve := make([]Point, n)
	for i, x := range xs {
		curve[i] = Point{X: x, Density: g.PDF(x)}
	}
	return curve, nil
}

// Histogram bins values into equal-width bins spanning their range. A
// constant sample is centred in a unit-wide range.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, &EmptySeriesError{Stage: "histogram"}
	}
	if bins < 1 {
		return nil, errors.New("histogram needs at least one bin")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// The last bin is closed on the right.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	width := (hi - lo) / float64(bins)
	total := float64(len(values))
	out := make([]Bin, bins)
	for i, c := range counts {
		upper := lo + float64(i+1)*width
		if i == bins-1 {
			upper = hi
		}
		out[i] = Bin{
			Lower:   lo + float64(i)*width,
			Upper:   upper,
			Count:   int(c),
			Density: c / (total * width),
		}
	}
	return out, nil
}
