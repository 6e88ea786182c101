package strategy

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/haskel/gemmpick/internal/decision/model"
)

// Type represents a decision rule family.
type Type string

const (
	TypeLargeK      Type = "large_k"
	TypeLargeKRatio Type = "large_k_ratio"
)

// IsValid checks if the rule type is valid.
func (t Type) IsValid() bool {
	switch t {
	case TypeLargeK, TypeLargeKRatio:
		return true
	}
	return false
}

// String returns string representation.
func (t Type) String() string {
	return string(t)
}

// Spec describes a rule and the constants it is built with.
// Fields that do not apply to Type are ignored.
type Spec struct {
	Type        Type    `yaml:"type" json:"type"`
	Threshold   float64 `yaml:"threshold" json:"threshold"`
	BatchFactor float64 `yaml:"batch_factor" json:"batch_factor"`
	KCutoff     int     `yaml:"k_cutoff" json:"k_cutoff"`
}

// UnmarshalYAML decodes a spec, filling constants that are absent from the
// document with the package defaults. Explicit values, zero included, are kept.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Type        Type     `yaml:"type"`
		Threshold   *float64 `yaml:"threshold"`
		BatchFactor *float64 `yaml:"batch_factor"`
		KCutoff     *int     `yaml:"k_cutoff"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*s = Spec{
		Type:        raw.Type,
		Threshold:   DefaultRatioThreshold,
		BatchFactor: model.DefaultBatchFactor,
		KCutoff:     DefaultKCutoff,
	}
	if raw.Threshold != nil {
		s.Threshold = *raw.Threshold
	}
	if raw.BatchFactor != nil {
		s.BatchFactor = *raw.BatchFactor
	}
	if raw.KCutoff != nil {
		s.KCutoff = *raw.KCutoff
	}
	return nil
}

// String renders the spec the way the rule names itself.
func (s Spec) String() string {
	switch s.Type {
	case TypeLargeK:
		return fmt.Sprintf("%s(%d)", s.Type, s.KCutoff)
	case TypeLargeKRatio:
		return fmt.Sprintf("%s(%s, %s)", s.Type, formatConst(s.Threshold), formatConst(s.BatchFactor))
	}
	return string(s.Type)
}

func formatConst(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
