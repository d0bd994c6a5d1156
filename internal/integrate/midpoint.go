// Package integrate provides the numerical integration used to normalize
// densities over a bounded observable range.
package integrate

// DefaultBins is the bin count used when the caller does not configure one.
const DefaultBins = 100

// Midpoint computes the integral of f over [lo, hi] by summing bin
// contributions evaluated at bin centers on a uniform grid. It returns 0 for
// a degenerate range (hi <= lo). Bin counts below 1 fall back to DefaultBins.
func Midpoint(f func(float64) float64, lo, hi float64, bins int) float64 {
	if hi <= lo {
		return 0
	}
	if bins < 1 {
		bins = DefaultBins
	}
	width := (hi - lo) / float64(bins)
	sum := 0.0
	for i := 0; i < bins; i++ {
		center := lo + (float64(i)+0.5)*width
		sum += f(center) * width
	}
	return sum
}
