package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/haskel/gemmpick/internal/decision"
	"github.com/haskel/gemmpick/internal/sweep"
)

// Printer writes reports as styled text or indented JSON.
type Printer struct {
	w    io.Writer
	json bool

	header lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
}

// NewPrinter creates a Printer for w. Styling is dropped automatically when
// w is not a terminal.
func NewPrinter(w io.Writer, asJSON bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		json:   asJSON,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		label:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Report prints a full analysis.
func (p *Printer) Report(r *Report) error {
	if p.json {
		return p.writeJSON(r)
	}

	p.section("Input")
	fmt.Fprintf(p.w, "files = %s\n", strings.Join(r.Metadata.Files, ", "))
	fmt.Fprintf(p.w, "records = %d, batch_factor = %v\n", r.Metadata.Records, r.Metadata.BatchFactor)
	if h := r.Metadata.Host; h != nil {
		p.printHost(h.Hostname, h.Platform, h.CPUModel, h.LogicalCores)
	}
	fmt.Fprintln(p.w, p.muted.Render("generated "+r.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	fmt.Fprintln(p.w)

	p.printFit(&r.Fit)
	fmt.Fprintln(p.w)

	p.section("Rules")
	for i := range r.Rules {
		p.printRule(&r.Rules[i])
	}
	return nil
}

// Fit prints the regression part of a report.
func (p *Printer) Fit(f *Fit) error {
	if p.json {
		return p.writeJSON(f)
	}
	p.printFit(f)
	return nil
}

// Rules prints the loss of each rule in order.
func (p *Printer) Rules(rules []RuleReport) error {
	if p.json {
		return p.writeJSON(rules)
	}
	for i := range rules {
		p.printRule(&rules[i])
	}
	return nil
}

// Sweep prints the winner of a parameter sweep.
func (p *Printer) Sweep(o *sweep.Outcome) error {
	if p.json {
		return p.writeJSON(o)
	}
	p.section("Sweep")
	fmt.Fprintf(p.w, "threshold = %v, batch_factor = %v\n", o.Best.Threshold, o.Best.BatchFactor)
	fmt.Fprintf(p.w, "mean loss = %v\n", o.Best.MeanLoss)
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("%d candidates in %s", o.Evaluated, o.Elapsed.Round(time.Millisecond))))
	return nil
}

func (p *Printer) printFit(f *Fit) {
	p.section("Value range")
	fmt.Fprintf(p.w, "low = %v, high = %v, average = %v\n", f.Range.Low, f.Range.High, f.Range.Average)
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("%d rows in window", f.Range.Count)))

	p.section("Regression")
	fmt.Fprintln(p.w, f.Regression.String())
	fmt.Fprintf(p.w, "threshold = %v\n", f.Threshold)
	if f.RSquared != nil {
		fmt.Fprintf(p.w, "r_squared = %v\n", *f.RSquared)
	}
}

func (p *Printer) printRule(rr *RuleReport) {
	fmt.Fprintln(p.w, p.label.Render(rr.Rule))
	fmt.Fprintf(p.w, "Total = %v, Max = %v, Mean = %v\n", rr.Stats.Total, rr.Stats.Max, rr.Stats.Mean)
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("ck = %d, rocblas = %d, misses = %d",
		rr.Picks[decision.BackendCK], rr.Picks[decision.BackendRocBLAS], rr.Misses)))
	if ci := rr.MeanInterval; ci != nil {
		fmt.Fprintf(p.w, "%g%% interval of mean = [%v, %v]\n", ci.ConfidenceLevel*100, ci.Lower, ci.Upper)
	}
}

func (p *Printer) printHost(hostname, platform, cpuModel string, cores int) {
	var parts []string
	for _, s := range []string{hostname, platform, cpuModel} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if cores > 0 {
		parts = append(parts, fmt.Sprintf("%d cores", cores))
	}
	if len(parts) > 0 {
		fmt.Fprintf(p.w, "host = %s\n", strings.Join(parts, ", "))
	}
}

func (p *Printer) section(title string) {
	fmt.Fprintln(p.w, p.header.Render("=== "+title+" ==="))
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
