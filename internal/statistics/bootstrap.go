package statistics

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ConfidenceInterval holds a bootstrap confidence interval of a mean.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// ErrNoData is returned when there are no values to resample.
var ErrNoData = errors.New("no data")

// Options configures a bootstrap run.
type Options struct {
	ConfidenceLevel float64
	Iterations      int
	// Seed makes resampling reproducible. A negative seed uses a random source.
	Seed int64
}

// BootstrapMean computes a percentile bootstrap confidence interval of the
// mean of values. With a single value the interval collapses to that value.
func BootstrapMean(values []float64, opts Options) (ConfidenceInterval, error) {
	n := len(values)
	if n == 0 {
		return ConfidenceInterval{}, fmt.Errorf("bootstrap: %w", ErrNoData)
	}
	if opts.ConfidenceLevel <= 0 || opts.ConfidenceLevel >= 1 {
		return ConfidenceInterval{}, fmt.Errorf("bootstrap: confidence level must be in (0, 1), got %v", opts.ConfidenceLevel)
	}

	m := stat.Mean(values, nil)
	if n < 2 {
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: opts.ConfidenceLevel,
		}, nil
	}

	iters := opts.Iterations
	if iters <= 0 {
		iters = DefaultBootstrapIterations
	}

	var rng *rand.Rand
	if opts.Seed >= 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = values[rng.Intn(n)]
		}
		bootMeans[i] = stat.Mean(sample, nil)
	}

	sort.Float64s(bootMeans)

	// Percentile method
	alpha := 1.0 - opts.ConfidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: opts.ConfidenceLevel,
		NumBootstraps:   iters,
	}, nil
}
