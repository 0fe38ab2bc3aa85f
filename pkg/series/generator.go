// Package series produces synthetic base fee histories and the rolling
// maxima derived from them.
package series

import (
	"errors"
	"fmt"
	"math"

	"github.com/brianbland/gasrisk/pkg/randomizer"
)

// Multipliers applied to the fee on each step of the walk.
const (
	UpTick   = 1.125
	DownTick = 0.875
)

// ErrInvalidSeriesParams is returned when the walk cannot be started.
var ErrInvalidSeriesParams = errors.New("invalid series parameters")

// Generate simulates a mean-reverting multiplicative random walk of the given
// length starting at meanLevel. On each step the fee moves up with probability
// exp(-fee/meanLevel) and down otherwise, so fees well above the mean almost
// always fall and fees well below it almost always rise.
func Generate(length int, meanLevel float64, src randomizer.Source) ([]float64, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: length %d must be at least 1", ErrInvalidSeriesParams, length)
	}
	if meanLevel <= 0 || math.IsNaN(meanLevel) || math.IsInf(meanLevel, 0) {
		return nil, fmt.Errorf("%w: mean level %v must be positive and finite", ErrInvalidSeriesParams, meanLevel)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidSeriesParams)
	}

	fees := make([]float64, length)
	fees[0] = meanLevel
	for i := 1; i < length; i++ {
		prev := fees[i-1]
		if src.Float64() < math.Exp(-prev/meanLevel) {
			fees[i] = prev * UpTick
		} else {
			fees[i] = prev * DownTick
		}
	}

	return fees, nil
}
