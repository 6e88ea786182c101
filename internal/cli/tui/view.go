package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haskel/gemmpick/internal/decision"
	"github.com/haskel/gemmpick/internal/loss"
)

// View renders the explorer
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitleBar())

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sections = append(sections, m.renderConstants())

	if m.ratio != nil && m.baseline != nil {
		sections = append(sections, m.renderComparison())
	}

	sections = append(sections, m.renderSweep())
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := titleStyle.Render("GEMMPICK EXPLORER")

	status := "ready"
	if m.evaluating {
		status = "evaluating..."
	}

	help := helpStyle.Render("q:quit ←→:threshold ↑↓:batch []:k cutoff s:sweep enter:apply r:reset")

	rightPart := fmt.Sprintf("%s | %s", status, help)
	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(rightPart) - 2
	if spacing < 1 {
		spacing = 1
	}

	return fmt.Sprintf("%s%s%s", title, strings.Repeat(" ", spacing), helpStyle.Render(rightPart))
}

func (m Model) renderConstants() string {
	var lines []string
	lines = append(lines, sectionHeaderStyle.Render("  Rules"))
	lines = append(lines, fmt.Sprintf("  %s %s",
		labelStyle.Render("large_k_ratio"),
		valueStyle.Render(fmt.Sprintf("threshold = %v, batch_factor = %v", m.threshold, m.batchFactor))))
	lines = append(lines, fmt.Sprintf("  %s %s",
		labelStyle.Render("large_k      "),
		valueStyle.Render(fmt.Sprintf("k_cutoff = %d", m.kCutoff))))
	return strings.Join(lines, "\n")
}

func (m Model) renderComparison() string {
	var lines []string
	lines = append(lines, sectionHeaderStyle.Render("  Loss"))

	header := fmt.Sprintf("  %-24s │ %12s │ %12s │ %12s │ %6s │ %6s",
		"Rule", "Total", "Max", "Mean", "ck", "miss")
	lines = append(lines, tableHeaderStyle.Render(header))

	lines = append(lines, renderRow(m.ratio, m.baseline))
	lines = append(lines, renderRow(m.baseline, m.ratio))

	lines = append(lines, helpStyle.Render(fmt.Sprintf("  %d records", m.ratio.Stats.Count)))
	return strings.Join(lines, "\n")
}

// renderRow formats one rule's scores, highlighting the mean when it beats other.
func renderRow(r, other *loss.Result) string {
	name := r.Rule
	if len(name) > 24 {
		name = name[:21] + "..."
	}

	mean := fmt.Sprintf("%12.6g", r.Stats.Mean)
	switch {
	case r.Stats.Mean < other.Stats.Mean:
		mean = betterStyle.Render(mean)
	case r.Stats.Mean > other.Stats.Mean:
		mean = worseStyle.Render(mean)
	}

	return tableCellStyle.Render(fmt.Sprintf("  %-24s │ %12.6g │ %12.6g │ ", name, r.Stats.Total, r.Stats.Max)) +
		mean +
		tableCellStyle.Render(fmt.Sprintf(" │ %6d │ %6d", r.Picks[decision.BackendCK], r.Misses))
}

func (m Model) renderSweep() string {
	switch {
	case m.sweeping:
		return helpStyle.Render(fmt.Sprintf("  Sweeping thresholds %d..%d at batch_factor %v...",
			m.config.Sweep.Start, m.config.Sweep.End, m.batchFactor))
	case m.best != nil:
		b := m.best.Best
		return fmt.Sprintf("  %s %s",
			labelStyle.Render("Best"),
			valueStyle.Render(fmt.Sprintf("threshold = %v, batch_factor = %v, mean = %.6g (%d candidates)",
				b.Threshold, b.BatchFactor, b.MeanLoss, m.best.Evaluated)))
	}
	return ""
}

func (m Model) renderFooter() string {
	if len(m.config.Files) == 0 {
		return ""
	}
	return helpStyle.Render("  Files: " + strings.Join(m.config.Files, ", "))
}
