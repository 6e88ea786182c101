// Package loss scores decision rules against benchmark records.
//
// delta1 is signed as ck - rocblas: a positive value means ck was slower,
// a negative value means rocblas was slower. A rule incurs loss only when it
// picks the slower backend, and the loss is the size of the gap. This sign
// mapping is a contract with the data producer and is not inferred.
package loss

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/decision"
)

// ErrEmptyInput is returned when there are no records to score.
var ErrEmptyInput = errors.New("no records")

// Statistics aggregates per-record losses.
type Statistics struct {
	Total float64 `json:"total"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Result holds the outcome of scoring one rule.
type Result struct {
	Rule   string                   `json:"rule"`
	Stats  Statistics               `json:"stats"`
	Losses []float64                `json:"-"`
	Picks  map[decision.Backend]int `json:"picks"`
	// Misses counts records where the rule picked the slower backend.
	Misses int `json:"misses"`
}

// Of returns the loss of picking backend for a record with the given delta1.
func Of(backend decision.Backend, delta float64) float64 {
	switch {
	case backend == decision.BackendCK && delta > 0:
		return delta
	case backend == decision.BackendRocBLAS && delta < 0:
		return -delta
	}
	return 0.0
}

// Losses returns the per-record loss of rule, in record order.
func Losses(rule decision.Rule, records []dataset.Record) ([]float64, error) {
	losses := make([]float64, len(records))
	for i, r := range records {
		picked, err := rule.Decide(r)
		if err != nil {
			return nil, ruleError(rule, i, r, err)
		}
		losses[i] = Of(picked, r.Delta1)
	}
	return losses, nil
}

// Evaluate scores rule against every record.
func Evaluate(rule decision.Rule, records []dataset.Record) (*Result, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("evaluate %s: %w", rule.Name(), ErrEmptyInput)
	}

	result := &Result{
		Rule:   rule.Name(),
		Losses: make([]float64, len(records)),
		Picks:  make(map[decision.Backend]int, 2),
	}

	for i, r := range records {
		picked, err := rule.Decide(r)
		if err != nil {
			return nil, ruleError(rule, i, r, err)
		}
		l := Of(picked, r.Delta1)
		result.Losses[i] = l
		result.Picks[picked]++
		if l > 0 {
			result.Misses++
		}
	}

	stats, err := Summarize(result.Losses)
	if err != nil {
		return nil, err
	}
	result.Stats = stats

	return result, nil
}

// MeanLoss returns the mean loss of rule over records.
func MeanLoss(rule decision.Rule, records []dataset.Record) (float64, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("mean loss %s: %w", rule.Name(), ErrEmptyInput)
	}

	losses, err := Losses(rule, records)
	if err != nil {
		return 0, err
	}
	return floats.Sum(losses) / float64(len(losses)), nil
}

// Summarize computes total, max and mean of losses.
func Summarize(losses []float64) (Statistics, error) {
	if len(losses) == 0 {
		return Statistics{}, fmt.Errorf("summarize: %w", ErrEmptyInput)
	}

	total := floats.Sum(losses)
	return Statistics{
		Total: total,
		Max:   floats.Max(losses),
		Mean:  total / float64(len(losses)),
		Count: len(losses),
	}, nil
}

func ruleError(rule decision.Rule, i int, r dataset.Record, err error) error {
	where := r.Location()
	if where == "" {
		where = fmt.Sprintf("record %d", i)
	}
	return fmt.Errorf("%s: %s: %w", rule.Name(), where, err)
}
