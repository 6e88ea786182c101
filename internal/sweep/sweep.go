package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/decision/strategy"
	"github.com/haskel/gemmpick/internal/loss"
)

// Range is the half-open integer interval [Start, End) walked by Step.
type Range struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
	Step  int `yaml:"step" json:"step"`
}

// Values lists the integers in the range.
func (r Range) Values() []int {
	step := r.Step
	if step <= 0 {
		step = 1
	}
	var out []int
	for v := r.Start; v < r.End; v += step {
		out = append(out, v)
	}
	return out
}

// Validate checks the range is walkable and non-empty.
func (r Range) Validate() error {
	if r.Step < 0 {
		return fmt.Errorf("step must be positive, got %d", r.Step)
	}
	if r.End <= r.Start {
		return fmt.Errorf("end (%d) must be greater than start (%d)", r.End, r.Start)
	}
	return nil
}

// Point is one large_k_ratio parameter pair and its mean loss.
type Point struct {
	Threshold   float64 `json:"threshold"`
	BatchFactor float64 `json:"batch_factor"`
	MeanLoss    float64 `json:"mean_loss"`
}

// Outcome is the result of a sweep.
type Outcome struct {
	Best      Point         `json:"best"`
	Evaluated int           `json:"evaluated"`
	Points    []Point       `json:"points,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Sweeper brute-forces large_k_ratio parameters that minimize mean loss.
type Sweeper struct {
	workers int
	logger  *slog.Logger
}

// New creates a Sweeper. Zero workers uses GOMAXPROCS.
func New(workers int, logger *slog.Logger) *Sweeper {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{workers: workers, logger: logger}
}

// Thresholds scores large_k_ratio(t, batchFactor) for every t in thresholds.
// All scored points are returned in threshold order.
func (s *Sweeper) Thresholds(ctx context.Context, records []dataset.Record, thresholds Range, batchFactor float64) (*Outcome, error) {
	var candidates []Point
	for _, t := range thresholds.Values() {
		candidates = append(candidates, Point{Threshold: float64(t), BatchFactor: batchFactor})
	}

	out, err := s.run(ctx, records, candidates)
	if err != nil {
		return nil, fmt.Errorf("threshold sweep: %w", err)
	}
	return out, nil
}

// Grid scores every (threshold, batch factor) pair, batch factors varying
// fastest within each threshold.
func (s *Sweeper) Grid(ctx context.Context, records []dataset.Record, thresholds, batchFactors Range) (*Outcome, error) {
	var candidates []Point
	for _, t := range thresholds.Values() {
		for _, bf := range batchFactors.Values() {
			candidates = append(candidates, Point{Threshold: float64(t), BatchFactor: float64(bf)})
		}
	}

	out, err := s.run(ctx, records, candidates)
	if err != nil {
		return nil, fmt.Errorf("grid sweep: %w", err)
	}
	// The grid is too large to keep every point in a report.
	out.Points = nil
	return out, nil
}

func (s *Sweeper) run(ctx context.Context, records []dataset.Record, candidates []Point) (*Outcome, error) {
	if len(records) == 0 {
		return nil, loss.ErrEmptyInput
	}

	s.logger.Debug("sweep started",
		"candidates", len(candidates),
		"records", len(records),
		"workers", s.workers,
	)
	start := time.Now()

	best, score, scores, err := MinimizeParallel(ctx, candidates, s.workers, func(p Point) (float64, error) {
		return loss.MeanLoss(strategy.NewLargeKRatio(p.Threshold, p.BatchFactor), records)
	})
	if err != nil {
		return nil, err
	}
	best.MeanLoss = score

	points := make([]Point, len(candidates))
	for i, p := range candidates {
		p.MeanLoss = scores[i]
		points[i] = p
	}

	out := &Outcome{
		Best:      best,
		Evaluated: len(candidates),
		Points:    points,
		Elapsed:   time.Since(start),
	}

	s.logger.Info("sweep finished",
		"best_threshold", best.Threshold,
		"best_batch_factor", best.BatchFactor,
		"mean_loss", score,
		"elapsed", out.Elapsed,
	)

	return out, nil
}
