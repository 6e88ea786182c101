package strategy

import (
	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/decision"
	"github.com/haskel/gemmpick/internal/decision/model"
)

// DefaultRatioThreshold is the ratio above which ck is picked.
const DefaultRatioThreshold = 7.0

// LargeKRatio picks ck when the record's ratio exceeds a threshold.
// The threshold usually comes from the regression zero crossing.
type LargeKRatio struct {
	threshold   float64
	batchFactor float64
}

// NewLargeKRatio creates a ratio threshold rule.
func NewLargeKRatio(threshold, batchFactor float64) *LargeKRatio {
	return &LargeKRatio{
		threshold:   threshold,
		batchFactor: batchFactor,
	}
}

// Name returns the rule name.
func (s *LargeKRatio) Name() string {
	return s.Spec().String()
}

// Spec returns the constants the rule was built with.
func (s *LargeKRatio) Spec() Spec {
	return Spec{Type: TypeLargeKRatio, Threshold: s.threshold, BatchFactor: s.batchFactor}
}

// Decide computes the ratio and compares it to the threshold.
// Returns model.ErrDivision when k or the batch factor is zero.
func (s *LargeKRatio) Decide(r dataset.Record) (decision.Backend, error) {
	ratio, err := model.Ratio(r, s.batchFactor)
	if err != nil {
		return "", err
	}
	if ratio > s.threshold {
		return decision.BackendCK, nil
	}
	return decision.BackendRocBLAS, nil
}
