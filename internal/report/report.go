// Package report assembles the analysis of a benchmark record set: the
// positive-delta value range, the ratio/delta regression and its threshold,
// and the loss of each configured decision rule.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/haskel/gemmpick/internal/dataset"
	"github.com/haskel/gemmpick/internal/decision"
	"github.com/haskel/gemmpick/internal/decision/model"
	"github.com/haskel/gemmpick/internal/decision/strategy"
	"github.com/haskel/gemmpick/internal/hostinfo"
	"github.com/haskel/gemmpick/internal/loss"
	"github.com/haskel/gemmpick/internal/statistics"
)

// Metadata records where a report came from.
type Metadata struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Files       []string       `json:"files"`
	Records     int            `json:"records"`
	BatchFactor float64        `json:"batch_factor"`
	Host        *hostinfo.Info `json:"host,omitempty"`
}

// Fit is the regression part of a report.
type Fit struct {
	Range      model.ValueRange `json:"range"`
	Regression model.Regression `json:"regression"`
	Threshold  float64          `json:"threshold"`
	// RSquared is nil when delta1 has no variance.
	RSquared *float64 `json:"r_squared,omitempty"`
}

// RuleReport is the loss of one rule, with an optional interval on its mean.
type RuleReport struct {
	loss.Result
	MeanInterval *statistics.ConfidenceInterval `json:"mean_interval,omitempty"`
}

// Report is a complete analysis.
type Report struct {
	Metadata Metadata     `json:"metadata"`
	Fit      Fit          `json:"fit"`
	Rules    []RuleReport `json:"rules"`
}

// Options controls what Build computes. Constants are used as given.
type Options struct {
	Files       []string
	BatchFactor float64
	Window      model.Window
	Rules       []strategy.Spec
	// Bootstrap enables confidence intervals on mean loss when non-nil.
	Bootstrap *statistics.Options
	// CollectHost adds host information to the metadata.
	CollectHost bool
}

// Builder produces reports.
type Builder struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
	probe  func(context.Context) (*hostinfo.Info, error)
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		opts:   opts,
		logger: logger,
		now:    time.Now,
		probe:  hostinfo.Collect,
	}
}

// Build is shorthand for NewBuilder(opts, logger).Build(ctx, records).
func Build(ctx context.Context, records []dataset.Record, opts Options, logger *slog.Logger) (*Report, error) {
	return NewBuilder(opts, logger).Build(ctx, records)
}

// Build runs the full analysis over records.
func (b *Builder) Build(ctx context.Context, records []dataset.Record) (*Report, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("report: %w", loss.ErrEmptyInput)
	}

	rules, err := strategy.NewAll(b.opts.Rules)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Metadata: Metadata{
			GeneratedAt: b.now().UTC(),
			Files:       b.opts.Files,
			Records:     len(records),
			BatchFactor: b.opts.BatchFactor,
		},
	}

	if b.opts.CollectHost {
		info, err := b.probe(ctx)
		if err != nil {
			b.logger.Warn("host information incomplete", "error", err)
		}
		rep.Metadata.Host = info
	}

	fit, err := FitRecords(records, b.opts.BatchFactor, b.opts.Window)
	if err != nil {
		return nil, err
	}
	if fit.RSquared == nil {
		b.logger.Warn("r-squared undefined, delta1 has no variance")
	}
	rep.Fit = *fit

	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rr, err := EvaluateRule(rule, records, b.opts.Bootstrap)
		if err != nil {
			return nil, err
		}
		b.logger.Debug("rule evaluated", "rule", rr.Rule, "mean", rr.Stats.Mean, "misses", rr.Misses)
		rep.Rules = append(rep.Rules, *rr)
	}

	return rep, nil
}

// FitRecords computes the value range, the regression line and its zero
// crossing for records at the given batch factor.
func FitRecords(records []dataset.Record, batchFactor float64, w model.Window) (*Fit, error) {
	samples, err := model.Collect(records, batchFactor)
	if err != nil {
		return nil, err
	}

	vr, err := model.PositiveValueRange(samples, w)
	if err != nil {
		return nil, err
	}

	reg, err := model.FitSamples(samples)
	if err != nil {
		return nil, err
	}

	threshold, err := reg.Threshold()
	if err != nil {
		return nil, err
	}

	fit := &Fit{
		Range:      vr,
		Regression: reg,
		Threshold:  threshold,
	}

	r2, err := model.RSquared(samples, reg)
	switch {
	case err == nil:
		fit.RSquared = &r2
	case !errors.Is(err, model.ErrDegenerateInput):
		return nil, err
	}

	return fit, nil
}

// EvaluateRule scores rule and, when bootstrap is non-nil, adds a
// confidence interval on its mean loss.
func EvaluateRule(rule decision.Rule, records []dataset.Record, bootstrap *statistics.Options) (*RuleReport, error) {
	res, err := loss.Evaluate(rule, records)
	if err != nil {
		return nil, err
	}

	rr := &RuleReport{Result: *res}
	if bootstrap != nil {
		ci, err := statistics.BootstrapMean(res.Losses, *bootstrap)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rule.Name(), err)
		}
		rr.MeanInterval = &ci
	}
	return rr, nil
}
