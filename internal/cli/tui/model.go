package tui

import (
	"log/slog"

	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/loss"
	"github.com/haskel/gemmpick/internal/sweep"
)

// Config holds explorer configuration
type Config struct {
	Records []dataset.Record
	Files   []string

	// Starting rule constants, used as given
	Threshold   float64
	BatchFactor float64
	KCutoff     int

	// ThresholdStep is the increment for the threshold keys
	ThresholdStep float64

	// Sweep is the threshold range searched by the sweep key
	Sweep   sweep.Range
	Workers int
	Logger  *slog.Logger
}

// Model represents the explorer state
type Model struct {
	config Config

	threshold   float64
	batchFactor float64
	kCutoff     int

	// Scores for the current constants
	ratio    *loss.Result
	baseline *loss.Result
	best     *sweep.Outcome

	// UI state
	width      int
	evaluating bool
	sweeping   bool
	err        error

	// seq discards results for constants that are no longer current
	seq int
}

// NewModel creates a new explorer model
func NewModel(cfg Config) Model {
	if cfg.ThresholdStep <= 0 {
		cfg.ThresholdStep = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return Model{
		config:      cfg,
		threshold:   cfg.Threshold,
		batchFactor: cfg.BatchFactor,
		kCutoff:     cfg.KCutoff,
		evaluating:  true,
	}
}
