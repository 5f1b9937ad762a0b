//go:build fastmath

package tube

import (
	"github.com/meko-christian/algo-approx"
)

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathLog1p computes ln(1+x) using fast approximation.
// Only called with x = exp(beta*u) > 0, so the argument stays above 1.
func mathLog1p(x float64) float64 {
	return approx.FastLog(1 + x)
}

// mathSqrt computes sqrt(x) using fast approximation.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
