package metrics

import "math"

// EmptyPercentile is returned by Percentile when there are no samples.
const EmptyPercentile = 50.0

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Percentile returns the nearest-rank percentile p (0-100) of an already
// sorted slice: the element at round(p/100 * (n-1)). No interpolation.
// Returns EmptyPercentile when sorted is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return EmptyPercentile
	}
	idx := int(math.Round(p / 100.0 * float64(len(sorted)-1)))
	if idx < 0 || idx >= len(sorted) {
		return EmptyPercentile
	}
	return sorted[idx]
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
