package config

import (
	"path/filepath"

	"github.com/haskel/gemmpick/internal/decision/model"
	"github.com/haskel/gemmpick/internal/decision/strategy"
	"github.com/haskel/gemmpick/internal/statistics"
	"github.com/haskel/gemmpick/internal/sweep"
)

type Config struct {
	Data        DataConfig        `yaml:"data" json:"data"`
	Model       ModelConfig       `yaml:"model" json:"model"`
	Rules       []strategy.Spec   `yaml:"rules" json:"rules"`
	Sweep       SweepConfig       `yaml:"sweep" json:"sweep"`
	Bootstrap   BootstrapConfig   `yaml:"bootstrap" json:"bootstrap"`
	Persistence PersistenceConfig `yaml:"persistence" json:"persistence"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
}

// DataConfig lists the benchmark files to load.
type DataConfig struct {
	// Files are read in order. Relative paths resolve against Dir.
	Files []string `yaml:"files" json:"files"`
	Dir   string   `yaml:"dir" json:"dir,omitempty"`
}

type ModelConfig struct {
	// BatchFactor is used for the regression and as the sweep default.
	BatchFactor float64 `yaml:"batch_factor" json:"batch_factor"`

	// PositiveRange bounds the deltas summarized by the value range.
	PositiveRange model.Window `yaml:"positive_range" json:"positive_range"`
}

type SweepConfig struct {
	Thresholds   sweep.Range `yaml:"thresholds" json:"thresholds"`
	BatchFactors sweep.Range `yaml:"batch_factors" json:"batch_factors"`
	// Workers bounds concurrent scoring; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
}

// BootstrapConfig controls confidence intervals on mean loss.
type BootstrapConfig struct {
	Enabled         bool    `yaml:"enabled" json:"enabled"`
	ConfidenceLevel float64 `yaml:"confidence_level" json:"confidence_level"`
	Iterations      int     `yaml:"iterations" json:"iterations"`
	Seed            int64   `yaml:"seed" json:"seed"`
}

type PersistenceConfig struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Paths returns the data files with Dir applied.
func (d *DataConfig) Paths() []string {
	paths := make([]string, len(d.Files))
	for i, f := range d.Files {
		if d.Dir != "" && !filepath.IsAbs(f) {
			f = filepath.Join(d.Dir, f)
		}
		paths[i] = f
	}
	return paths
}

// BootstrapOptions converts the section for the statistics package.
func (b *BootstrapConfig) BootstrapOptions() statistics.Options {
	return statistics.Options{
		ConfidenceLevel: b.ConfidenceLevel,
		Iterations:      b.Iterations,
		Seed:            b.Seed,
	}
}
