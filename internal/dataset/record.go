package dataset

import (
	"errors"
	"fmt"
)

// Field names in file order. Data files carry no header row.
var Fields = [...]string{"g", "m", "n", "k", "delta1", "delta2"}

var (
	// ErrNumericConversion is returned when a field is not a valid number.
	ErrNumericConversion = errors.New("non-numeric field")
	// ErrFieldCount is returned when a row does not have exactly six fields.
	ErrFieldCount = errors.New("wrong number of fields")
)

// Record is one GEMM benchmark observation.
//
// Delta1 and Delta2 are signed performance differences between the ck and
// rocblas kernels (delta = ck - rocblas).
type Record struct {
	G      int     `json:"g"`
	M      int     `json:"m"`
	N      int     `json:"n"`
	K      int     `json:"k"`
	Delta1 float64 `json:"delta1"`
	Delta2 float64 `json:"delta2"`

	// Source and Line locate the row for error reporting.
	Source string `json:"source,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// Location returns "path:line" for the record, or "" when unknown.
func (r Record) Location() string {
	if r.Source == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Source, r.Line)
}

// Shape returns the GEMM shape as "gxmxnxk".
func (r Record) Shape() string {
	return fmt.Sprintf("%dx%dx%dx%d", r.G, r.M, r.N, r.K)
}

// RowError describes a row that could not be loaded.
type RowError struct {
	Path  string
	Line  int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s:%d: field %s: %v", e.Path, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
