package statistics

import (
	"math"
	"sort"

	"github.com/groundsdev/grounds/internal/metrics"
)

// MeanInterval holds a bootstrap confidence interval for the mean of a
// batch of report scores.
type MeanInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// BootstrapCI computes a bootstrap confidence interval over the given scores
// using the percentile method and DefaultSeed. confidenceLevel should be in
// (0, 1), e.g. 0.95. Fewer than 2 scores yield a degenerate interval at the
// mean.
func BootstrapCI(scores []float64, confidenceLevel float64) MeanInterval {
	return BootstrapCIWithSeed(scores, confidenceLevel, DefaultSeed)
}

// BootstrapCIWithSeed is like BootstrapCI with an explicit LCG seed.
func BootstrapCIWithSeed(scores []float64, confidenceLevel float64, seed uint64) MeanInterval {
	n := len(scores)
	m := metrics.Mean(scores)
	if n < 2 {
		return MeanInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
		}
	}

	rng := NewLCG(seed)
	iters := DefaultBootstrapIterations

	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := range iters {
		for j := range n {
			sample[j] = scores[rng.Intn(n)]
		}
		bootMeans[i] = metrics.Mean(sample)
	}

	sort.Float64s(bootMeans)

	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	loIdx = min(max(loIdx, 0), iters-1)
	hiIdx = min(max(hiIdx, 0), iters-1)

	return MeanInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}
