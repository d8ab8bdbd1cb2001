package service

import "math"

// RoundingPrecision is the factor used to round monetary values to two
// decimal places at the service boundary. The valuation engine itself
// computes exact float sums; rounding happens once, on the way out.
const RoundingPrecision = 100

// round2 rounds a monetary value to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*RoundingPrecision) / RoundingPrecision
}
