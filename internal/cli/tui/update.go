package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return evaluate(m)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case evalMsg:
		if msg.seq != m.seq {
			// Stale result
			return m, nil
		}
		m.evaluating = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.ratio = msg.ratio
			m.baseline = msg.baseline
		}
		return m, nil

	case sweepMsg:
		m.sweeping = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.best = msg.outcome
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "right", "l":
		m.threshold += m.config.ThresholdStep
		return m.reevaluate()

	case "left", "h":
		m.threshold -= m.config.ThresholdStep
		return m.reevaluate()

	case "up", "k":
		m.batchFactor++
		return m.reevaluate()

	case "down", "j":
		if m.batchFactor > 1 {
			m.batchFactor--
			return m.reevaluate()
		}
		return m, nil

	case "]":
		m.kCutoff *= 2
		return m.reevaluate()

	case "[":
		if m.kCutoff > 1 {
			m.kCutoff /= 2
			return m.reevaluate()
		}
		return m, nil

	case "s":
		if m.sweeping {
			return m, nil
		}
		m.sweeping = true
		m.best = nil
		return m, runSweep(m)

	case "enter":
		// Jump to the sweep winner
		if m.best == nil {
			return m, nil
		}
		m.threshold = m.best.Best.Threshold
		m.batchFactor = m.best.Best.BatchFactor
		return m.reevaluate()

	case "r":
		m.threshold = m.config.Threshold
		m.batchFactor = m.config.BatchFactor
		m.kCutoff = m.config.KCutoff
		return m.reevaluate()
	}

	return m, nil
}

func (m Model) reevaluate() (tea.Model, tea.Cmd) {
	m.seq++
	m.evaluating = true
	return m, evaluate(m)
}
