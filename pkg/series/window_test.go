package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/gasrisk/pkg/randomizer"
)

// naiveWindowedMax is the O(n*w) definition used as an oracle.
func naiveWindowedMax(values []float64, window int) []float64 {
	out := make([]float64, 0, len(values)-window+1)
	for i := 0; i+window <= len(values); i++ {
		m := values[i]
		for _, v := range values[i : i+window] {
			if v > m {
				m = v
			}
		}
		out = append(out, m)
	}
	return out
}

func TestWindowedMaxExample(t *testing.T) {
	maxima, err := WindowedMax([]float64{1, 3, 2, 5, 4}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 5}, maxima)
}

func TestWindowedMaxEdgeWindows(t *testing.T) {
	values := []float64{4, 1, 7, 7, 2}

	maxima, err := WindowedMax(values, 1)
	require.NoError(t, err)
	assert.Equal(t, values, maxima)

	maxima, err = WindowedMax(values, len(values))
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, maxima)
}

func TestWindowedMaxInvalidWindow(t *testing.T) {
	values := []float64{1, 2, 3}

	for _, window := range []int{0, -1, 4} {
		_, err := WindowedMax(values, window)

		var windowErr *InvalidWindowError
		require.ErrorAs(t, err, &windowErr, "window %d", window)
		assert.Equal(t, 3, windowErr.SeriesLength)
		assert.Equal(t, window, windowErr.WindowSize)
	}

	_, err := WindowedMax(nil, 1)
	var windowErr *InvalidWindowError
	assert.ErrorAs(t, err, &windowErr)
}

func TestWindowedMaxMatchesNaive(t *testing.T) {
	rng := randomizer.NewSeeded(2024)
	values := make([]float64, 3_000)
	for i := range values {
		// Coarse values produce plenty of ties.
		values[i] = float64(rng.Intn(50))
	}

	for _, window := range []int{1, 2, 3, 17, 250, 1_000, 2_999, 3_000} {
		got, err := WindowedMax(values, window)
		require.NoError(t, err)
		require.Len(t, got, len(values)-window+1)
		assert.Equal(t, naiveWindowedMax(values, window), got, "window %d", window)
	}
}

func TestWindowedMaxProperties(t *testing.T) {
	fees, err := Generate(20_000, 100, randomizer.NewSeeded(5))
	require.NoError(t, err)

	const window = 720
	maxima, err := WindowedMax(fees, window)
	require.NoError(t, err)
	require.Len(t, maxima, len(fees)-window+1)

	for i, m := range maxima {
		found := false
		for _, v := range fees[i : i+window] {
			if v > m {
				t.Fatalf("window %d: element %v exceeds maximum %v", i, v, m)
			}
			if v == m {
				found = true
			}
		}
		if !found {
			t.Fatalf("window %d: maximum %v not drawn from the window", i, m)
		}
	}
}
