package analysis

import (
	"math"

	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
)

// ArgMax returns the index of the largest non-NaN value. The first of equal
// maxima wins.
func ArgMax(vals []float64) (int, error) {
	best := -1
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v > vals[best] {
			best = i
		}
	}
	if best < 0 {
		return -1, dataset.ErrNoValues
	}
	return best, nil
}

// ArgMin returns the index of the smallest non-NaN value. The first of equal
// minima wins.
func ArgMin(vals []float64) (int, error) {
	neg := make([]float64, len(vals))
	for i, v := range vals {
		neg[i] = -v
	}
	return ArgMax(neg)
}
