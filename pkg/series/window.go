package series

import "fmt"

// InvalidWindowError reports a window size outside [1, len(series)].
type InvalidWindowError struct {
	SeriesLength int
	WindowSize   int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid window size %d for series of length %d: must be between 1 and %d",
		e.WindowSize, e.SeriesLength, e.SeriesLength)
}

// WindowedMax returns the maximum of every contiguous window of the given size,
// in window order. The result has len(values)-window+1 elements.
//
// A monotonic deque of indices keeps the scan O(n) regardless of the window
// size; the coverage windows used for pricing span thousands of blocks.
func WindowedMax(values []float64, window int) ([]float64, error) {
	n := len(values)
	if window < 1 || window > n {
		return nil, &InvalidWindowError{SeriesLength: n, WindowSize: window}
	}

	maxima := make([]float64, 0, n-window+1)

	// deque[head:] holds indices whose values are strictly decreasing.
	deque := make([]int, 0, window)
	head := 0
	for i, v := range values {
		for len(deque) > head && values[deque[len(deque)-1]] <= v {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)

		if deque[head] <= i-window {
			head++
		}
		if i >= window-1 {
			maxima = append(maxima, values[deque[head]])
		}

		// Compact once the dead prefix dominates to bound memory.
		if head > window {
			deque = append(deque[:0], deque[head:]...)
			head = 0
		}
	}

	return maxima, nil
}
