package strategy

import (
	"errors"
	"testing"

	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/decision"
	"github.com/haskel/gemmpick/internal/decision/model"
)

func TestType_IsValid(t *testing.T) {
	tests := []struct {
		typ   Type
		valid bool
	}{
		{TypeLargeK, true},
		{TypeLargeKRatio, true},
		{"threshold", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.typ.IsValid(); got != tt.valid {
			t.Errorf("Type(%q).IsValid() = %v, expected %v", tt.typ, got, tt.valid)
		}
	}
}

func TestLargeK_Decide(t *testing.T) {
	s := NewLargeK(DefaultKCutoff)

	tests := []struct {
		k    int
		want decision.Backend
	}{
		{k: 3000, want: decision.BackendRocBLAS},
		{k: 2049, want: decision.BackendRocBLAS},
		{k: 2048, want: decision.BackendCK},
		{k: 1, want: decision.BackendCK},
		{k: 0, want: decision.BackendCK},
	}

	for _, tt := range tests {
		got, err := s.Decide(dataset.Record{K: tt.k})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("k=%d: expected %s, got %s", tt.k, tt.want, got)
		}
	}
}

func TestLargeK_Name(t *testing.T) {
	if got := NewLargeK(2048).Name(); got != "large_k(2048)" {
		t.Errorf("expected name 'large_k(2048)', got '%s'", got)
	}
}

func TestLargeKRatio_Decide(t *testing.T) {
	s := NewLargeKRatio(7, 62)

	tests := []struct {
		name string
		rec  dataset.Record
		want decision.Backend
	}{
		// ratio = 62/62 * 4 * 8 / 2 = 16
		{name: "above threshold", rec: dataset.Record{G: 62, M: 4, N: 8, K: 2}, want: decision.BackendCK},
		// ratio = 7
		{name: "at threshold", rec: dataset.Record{G: 62, M: 7, N: 1, K: 1}, want: decision.BackendRocBLAS},
		// ratio = 1
		{name: "below threshold", rec: dataset.Record{G: 62, M: 1, N: 1, K: 1}, want: decision.BackendRocBLAS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Decide(tt.rec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLargeKRatio_ZeroK(t *testing.T) {
	_, err := NewLargeKRatio(7, 62).Decide(dataset.Record{G: 1, M: 1, N: 1, K: 0})
	if !errors.Is(err, model.ErrDivision) {
		t.Errorf("expected ErrDivision, got %v", err)
	}
}

func TestLargeKRatio_StatelessAcrossCalls(t *testing.T) {
	s := NewLargeKRatio(7, 62)
	rec := dataset.Record{G: 62, M: 4, N: 8, K: 2}

	first, _ := s.Decide(rec)
	_, _ = s.Decide(dataset.Record{G: 1, M: 1, N: 1, K: 1})
	second, _ := s.Decide(rec)

	if first != second {
		t.Errorf("expected identical decisions, got %s then %s", first, second)
	}
}

func TestLargeKRatio_Name(t *testing.T) {
	tests := []struct {
		threshold, bf float64
		want          string
	}{
		{7, 62, "large_k_ratio(7, 62)"},
		{6.5, 64, "large_k_ratio(6.5, 64)"},
	}

	for _, tt := range tests {
		if got := NewLargeKRatio(tt.threshold, tt.bf).Name(); got != tt.want {
			t.Errorf("expected name %q, got %q", tt.want, got)
		}
	}
}

func TestRuleFunc(t *testing.T) {
	r := decision.RuleFunc{
		Label: "always_ck",
		Fn: func(dataset.Record) (decision.Backend, error) {
			return decision.BackendCK, nil
		},
	}

	if r.Name() != "always_ck" {
		t.Errorf("expected name 'always_ck', got '%s'", r.Name())
	}
	got, err := r.Decide(dataset.Record{})
	if err != nil || got != decision.BackendCK {
		t.Errorf("expected ck, got %s (%v)", got, err)
	}
}
