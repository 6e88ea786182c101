package model

import (
	"errors"
	"fmt"

	"github.com/haskel/gemmpick/internal/dataset"
)

// DefaultBatchFactor normalizes the group count g in Ratio.
const DefaultBatchFactor = 62.0

// ErrDivision is returned when a ratio or threshold would divide by zero.
var ErrDivision = errors.New("division by zero")

// Ratio returns (g / batchFactor) * m * n / k.
//
// The value approximates multiply-accumulate work per unit of the
// contraction dimension and is the single feature used for backend choice.
func Ratio(r dataset.Record, batchFactor float64) (float64, error) {
	if batchFactor == 0 {
		return 0, fmt.Errorf("ratio: batch factor: %w", ErrDivision)
	}
	if r.K == 0 {
		return 0, fmt.Errorf("ratio: k is zero for %s: %w", r.Shape(), ErrDivision)
	}

	batch := float64(r.G) / batchFactor
	return batch * float64(r.M) * float64(r.N) / float64(r.K), nil
}

// Sample is one (ratio, delta1) observation.
type Sample struct {
	Ratio float64 `json:"ratio"`
	Delta float64 `json:"delta"`
}

// Collect computes one Sample per record in a single pass.
// The first record that cannot produce a ratio aborts the pass.
func Collect(records []dataset.Record, batchFactor float64) ([]Sample, error) {
	samples := make([]Sample, 0, len(records))
	for _, r := range records {
		ratio, err := Ratio(r, batchFactor)
		if err != nil {
			if loc := r.Location(); loc != "" {
				return nil, fmt.Errorf("%s: %w", loc, err)
			}
			return nil, err
		}
		samples = append(samples, Sample{Ratio: ratio, Delta: r.Delta1})
	}
	return samples, nil
}
