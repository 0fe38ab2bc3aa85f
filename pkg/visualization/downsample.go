package visualization

// downsample reduces (xs, ys) to at most n points by splitting the series
// into consecutive buckets and keeping the point with the largest y in
// each.
// xs and ys must have the same length.
func downsample(xs, ys []float64, n int) ([]float64, []float64) {
	if n < 1 || len(ys) <= n {
		return append([]float64(nil), xs...), append([]float64(nil), ys...)
	}

	size := (len(ys) + n - 1) / n
	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	for lo := 0; lo < len(ys); lo += size {
		hi := min(lo+size, len(ys))
		best := lo
		for i := lo + 1; i < hi; i++ {
			if ys[i] > ys[best] {
				best = i
			}
		}
		outX = append(outX, xs[best])
		outY = append(outY, ys[best])
	}
	return outX, outY
}
