package strategy

import (
	"fmt"

	"github.com/haskel/gemmpick/internal/decision"
)

// Defaults returns the rule set evaluated by a standard report.
func Defaults() []Spec {
	return []Spec{
		{Type: TypeLargeKRatio, Threshold: 7, BatchFactor: 62},
		{Type: TypeLargeKRatio, Threshold: 8, BatchFactor: 64},
		{Type: TypeLargeKRatio, Threshold: 7, BatchFactor: 64},
		{Type: TypeLargeKRatio, Threshold: 6, BatchFactor: 64},
		{Type: TypeLargeKRatio, Threshold: 128, BatchFactor: 2},
		{Type: TypeLargeK, KCutoff: DefaultKCutoff},
	}
}

// Validate checks that the spec can build a rule.
func (s Spec) Validate() error {
	if !s.Type.IsValid() {
		return fmt.Errorf("unknown rule type: %q (valid: %s, %s)", s.Type, TypeLargeK, TypeLargeKRatio)
	}
	if s.Type == TypeLargeKRatio && s.BatchFactor < 0 {
		return fmt.Errorf("%s: batch_factor must not be negative, got %v", s.Type, s.BatchFactor)
	}
	if s.Type == TypeLargeK && s.KCutoff < 0 {
		return fmt.Errorf("%s: k_cutoff must be non-negative, got %d", s.Type, s.KCutoff)
	}
	return nil
}

// New creates a rule with exactly the constants in s.
func New(s Spec) (decision.Rule, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Type {
	case TypeLargeK:
		return NewLargeK(s.KCutoff), nil
	case TypeLargeKRatio:
		return NewLargeKRatio(s.Threshold, s.BatchFactor), nil
	default:
		return nil, fmt.Errorf("unknown rule type: %s", s.Type)
	}
}

// NewAll creates rules for every spec, in order.
func NewAll(specs []Spec) ([]decision.Rule, error) {
	rules := make([]decision.Rule, 0, len(specs))
	for i, s := range specs {
		r, err := New(s)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}
