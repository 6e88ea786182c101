package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haskel/gemmpick/internal/decision/strategy"
	"github.com/haskel/gemmpick/internal/loss"
	"github.com/haskel/gemmpick/internal/sweep"
)

// Messages for tea.Cmd
type evalMsg struct {
	seq      int
	ratio    *loss.Result
	baseline *loss.Result
	err      error
}

type sweepMsg struct {
	outcome *sweep.Outcome
	err     error
}

// evaluate scores large_k_ratio at the current constants and large_k at the
// current cutoff.
func evaluate(m Model) tea.Cmd {
	cfg := m.config
	seq := m.seq
	rule := strategy.NewLargeKRatio(m.threshold, m.batchFactor)
	cutoff := m.kCutoff

	return func() tea.Msg {
		ratio, err := loss.Evaluate(rule, cfg.Records)
		if err != nil {
			return evalMsg{seq: seq, err: err}
		}

		baseline, err := loss.Evaluate(strategy.NewLargeK(cutoff), cfg.Records)
		if err != nil {
			return evalMsg{seq: seq, err: err}
		}

		return evalMsg{seq: seq, ratio: ratio, baseline: baseline}
	}
}

// runSweep searches the configured threshold range at the current batch factor.
func runSweep(m Model) tea.Cmd {
	cfg := m.config
	bf := m.batchFactor

	return func() tea.Msg {
		s := sweep.New(cfg.Workers, cfg.Logger)
		outcome, err := s.Thresholds(context.Background(), cfg.Records, cfg.Sweep, bf)
		return sweepMsg{outcome: outcome, err: err}
	}
}
