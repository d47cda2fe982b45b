// Package analyze computes economic patterns over the integrated border
// table.
package analyze

import "math"

// Correlation computes the Pearson correlation coefficient of two
// equal-length series. ok is false when the correlation is undefined:
// fewer than two points, mismatched lengths, or zero variance in either
// series.
func Correlation(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0, false
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	r := cov / math.Sqrt(varX*varY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
