package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"strconv"
	"strings"
)

// Read returns a lazy sequence over the records of one data file.
//
// The file is opened when iteration starts and closed when it ends or the
// consumer stops early. On the first failure the sequence yields the error
// once and stops; no row is skipped.
func Read(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Record{}, fmt.Errorf("csv: open %s: %w", path, err))
			return
		}
		defer f.Close() //nolint:errcheck

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		reader.ReuseRecord = true

		for {
			fields, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Record{}, fmt.Errorf("csv: parse %s: %w", path, err))
				return
			}

			line, _ := reader.FieldPos(0)
			rec, err := parseRecord(path, line, fields)
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll chains Read over paths in order. Each call starts a fresh pass.
func ReadAll(paths ...string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for _, path := range paths {
			for rec, err := range Read(path) {
				if !yield(rec, err) || err != nil {
					return
				}
			}
		}
	}
}

// Load reads every record of paths into memory.
func Load(paths ...string) ([]Record, error) {
	if len(paths) == 0 {
		return nil, errors.New("csv: no input files")
	}

	var records []Record
	for rec, err := range ReadAll(paths...) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(path string, line int, fields []string) (Record, error) {
	if len(fields) != len(Fields) {
		return Record{}, &RowError{
			Path: path,
			Line: line,
			Err:  fmt.Errorf("%w: got %d, expected %d", ErrFieldCount, len(fields), len(Fields)),
		}
	}

	rec := Record{Source: path, Line: line}

	ints := []*int{&rec.G, &rec.M, &rec.N, &rec.K}
	for i, dst := range ints {
		raw := strings.TrimSpace(fields[i])
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Record{}, numericError(path, line, i, raw)
		}
		*dst = v
	}

	floats := []*float64{&rec.Delta1, &rec.Delta2}
	for i, dst := range floats {
		idx := len(ints) + i
		raw := strings.TrimSpace(fields[idx])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, numericError(path, line, idx, raw)
		}
		*dst = v
	}

	return rec, nil
}

func numericError(path string, line, idx int, raw string) error {
	return &RowError{
		Path:  path,
		Line:  line,
		Field: Fields[idx],
		Err:   fmt.Errorf("%w: %q", ErrNumericConversion, raw),
	}
}
