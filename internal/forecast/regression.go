package forecast

// linearRegression fits y = slope*x + intercept by ordinary least squares.
// ok is false when fewer than two points exist or all x values coincide.
func linearRegression(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return 0, 0, false
	}

	var sumX, sumY, sumX2, sumXY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
		sumX2 += xs[i] * xs[i]
		sumXY += xs[i] * ys[i]
	}

	denominator := float64(n)*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0, 0, false
	}

	slope = (float64(n)*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / float64(n)
	return slope, intercept, true
}
