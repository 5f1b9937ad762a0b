//go:build !fastmath

package tube

import "math"

// mathExp computes e^x using standard library math.
func mathExp(x float64) float64 {
	return math.Exp(x)
}

// mathLog1p computes ln(1+x) using standard library math.
func mathLog1p(x float64) float64 {
	return math.Log1p(x)
}

// mathSqrt computes sqrt(x) using standard library math.
func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}
