package decision

import (
	"github.com/haskel/gemmpick/internal/dataset"
)

// Backend identifies a GEMM kernel implementation.
type Backend string

const (
	BackendCK      Backend = "ck"
	BackendRocBLAS Backend = "rocblas"
)

// IsValid checks if the backend label is known.
func (b Backend) IsValid() bool {
	switch b {
	case BackendCK, BackendRocBLAS:
		return true
	}
	return false
}

// String returns string representation.
func (b Backend) String() string {
	return string(b)
}

// Rule predicts the faster backend for a benchmark record.
// Rules carry only the constants they were built with.
type Rule interface {
	// Name returns the rule name including its parameters.
	Name() string

	// Decide returns the backend the rule picks for r.
	Decide(r dataset.Record) (Backend, error)
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc struct {
	Label string
	Fn    func(dataset.Record) (Backend, error)
}

// Name returns the rule label.
func (f RuleFunc) Name() string {
	return f.Label
}

// Decide calls the wrapped function.
func (f RuleFunc) Decide(r dataset.Record) (Backend, error) {
	return f.Fn(r)
}
