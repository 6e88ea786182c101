package strategy

import (
	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/decision"
)

// DefaultKCutoff is the contraction size above which rocblas is picked.
const DefaultKCutoff = 2048

// LargeK picks rocblas for large contraction dimensions and ck otherwise.
// It looks at k only.
type LargeK struct {
	cutoff int
}

// NewLargeK creates a rule that picks rocblas when k > cutoff.
func NewLargeK(cutoff int) *LargeK {
	return &LargeK{cutoff: cutoff}
}

// Name returns the rule name.
func (s *LargeK) Name() string {
	return Spec{Type: TypeLargeK, KCutoff: s.cutoff}.String()
}

// Decide never fails.
func (s *LargeK) Decide(r dataset.Record) (decision.Backend, error) {
	if r.K > s.cutoff {
		return decision.BackendRocBLAS, nil
	}
	return decision.BackendCK, nil
}
