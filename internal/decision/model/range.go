package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyRange is returned when no sample falls inside a delta window.
var ErrEmptyRange = errors.New("no samples in range")

// Window is an open interval of delta values: Min < delta < Max.
type Window struct {
	Min float64 `json:"min" yaml:"min_delta"`
	Max float64 `json:"max" yaml:"max_delta"`
}

// DefaultWindow selects rows where ck is slower by less than 0.001.
var DefaultWindow = Window{Min: 0, Max: 0.001}

// Contains reports whether delta lies strictly inside the window.
func (w Window) Contains(delta float64) bool {
	return delta > w.Min && delta < w.Max
}

// ValueRange summarizes the ratios of the samples inside a window.
type ValueRange struct {
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// PositiveValueRange returns the min, max and mean ratio among samples
// whose delta lies inside w.
func PositiveValueRange(samples []Sample, w Window) (ValueRange, error) {
	var ratios []float64
	for _, s := range samples {
		if w.Contains(s.Delta) {
			ratios = append(ratios, s.Ratio)
		}
	}

	if len(ratios) == 0 {
		return ValueRange{}, fmt.Errorf("value range: %d samples, none with %v < delta < %v: %w",
			len(samples), w.Min, w.Max, ErrEmptyRange)
	}

	return ValueRange{
		Low:     floats.Min(ratios),
		High:    floats.Max(ratios),
		Average: stat.Mean(ratios, nil),
		Count:   len(ratios),
	}, nil
}
