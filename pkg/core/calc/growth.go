package calc

import "math"

// GrowthRate is the year-over-year change (current - prior) / |prior|.
// A zero prior follows the ratio sentinel policy.
func GrowthRate(current, prior float64) float64 {
	return ratio(current-prior, math.Abs(prior))
}

// CAGR is the compound annual growth rate between two values `years` apart.
// It is NaN when the base is not positive or the span is not positive; a
// negative ending value has no real root.
func CAGR(endingValue, beginningValue float64, years int) float64 {
	if beginningValue <= 0 || years <= 0 || endingValue < 0 {
		return math.NaN()
	}
	return math.Pow(endingValue/beginningValue, 1.0/float64(years)) - 1
}
