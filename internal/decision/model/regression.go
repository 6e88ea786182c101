package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData is returned when fewer than two points were observed.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegenerateInput is returned when the least-squares system is singular.
	ErrDegenerateInput = errors.New("degenerate input")
)

// Regression is a fitted line: delta = Slope * ratio + Intercept.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	N         int     `json:"n"`
}

// Predict returns the fitted delta at x.
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// Threshold returns the ratio at which the fitted delta crosses zero.
func (r Regression) Threshold() (float64, error) {
	if r.Slope == 0 {
		return 0, fmt.Errorf("threshold: slope is zero: %w", ErrDivision)
	}
	return -r.Intercept / r.Slope, nil
}

// String renders the line as "y = m * x + b".
func (r Regression) String() string {
	return fmt.Sprintf("y = %v * x + %v", r.Slope, r.Intercept)
}

// LinearFit accumulates the sums needed for a closed-form ordinary
// least-squares fit. The zero value is ready to use.
type LinearFit struct {
	n     int
	sumX  float64
	sumY  float64
	sumXY float64
	sumX2 float64
}

// Observe adds one (x, y) point.
func (f *LinearFit) Observe(x, y float64) {
	f.n++
	f.sumX += x
	f.sumY += y
	f.sumXY += x * y
	f.sumX2 += x * x
}

// Count returns the number of observed points.
func (f *LinearFit) Count() int {
	return f.n
}

// Fit solves
//
//	m = (n*Sxy - Sx*Sy) / (n*Sxx - Sx*Sx)
//	b = (Sy - m*Sx) / n
func (f *LinearFit) Fit() (Regression, error) {
	if f.n < 2 {
		return Regression{}, fmt.Errorf("regression: %d points: %w", f.n, ErrInsufficientData)
	}

	n := float64(f.n)
	denom := n*f.sumX2 - f.sumX*f.sumX
	if denom == 0 {
		return Regression{}, fmt.Errorf("regression: all ratios identical: %w", ErrDegenerateInput)
	}

	m := (n*f.sumXY - f.sumX*f.sumY) / denom
	b := (f.sumY - m*f.sumX) / n
	if math.IsNaN(m) || math.IsInf(m, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return Regression{}, fmt.Errorf("regression: non-finite coefficients: %w", ErrDegenerateInput)
	}

	return Regression{Slope: m, Intercept: b, N: f.n}, nil
}

// FitSamples fits ratio (x) against delta (y).
func FitSamples(samples []Sample) (Regression, error) {
	var f LinearFit
	for _, s := range samples {
		f.Observe(s.Ratio, s.Delta)
	}
	return f.Fit()
}

// RSquared returns the coefficient of determination of reg over samples.
func RSquared(samples []Sample, reg Regression) (float64, error) {
	if len(samples) < 2 {
		return 0, fmt.Errorf("r-squared: %d points: %w", len(samples), ErrInsufficientData)
	}

	x, y := split(samples)
	r2 := stat.RSquared(x, y, nil, reg.Intercept, reg.Slope)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0, fmt.Errorf("r-squared: constant deltas: %w", ErrDegenerateInput)
	}
	return r2, nil
}

func split(samples []Sample) (x, y []float64) {
	x = make([]float64, len(samples))
	y = make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Ratio
		y[i] = s.Delta
	}
	return x, y
}
