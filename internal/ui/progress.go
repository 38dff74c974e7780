package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

// plainStep controls how often plain mode prints a counter line, so logs
// from large collections stay bounded.
const plainStep = 50

// Meter tracks one long loop. In styled mode it redraws a progress bar in
// place; in plain mode it prints an occasional counter line.
type Meter struct {
	console *Console
	label   string
	total   int
	done    int
	bar     progress.Model
}

// StartMeter begins tracking a loop of total steps.
func (c *Console) StartMeter(label string, total int) *Meter {
	m := &Meter{
		console: c,
		label:   label,
		total:   total,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
	if c.mode == ModePlain && total > 0 {
		fmt.Fprintf(c.out, "%s: 0/%d\n", label, total)
	}
	return m
}

// SetTotal sets the step count for meters whose size is only known once
// the work begins.
func (m *Meter) SetTotal(total int) {
	m.total = total
}

// Step records done units of work and redraws.
func (m *Meter) Step(done int) {
	m.done = done
	if m.total <= 0 {
		return
	}
	if m.console.mode == ModeStyled {
		percent := float64(done) / float64(m.total)
		fmt.Fprintf(m.console.out, "\r%s %s", m.label, m.bar.ViewAs(percent))
		return
	}
	if done%plainStep == 0 || done == m.total {
		fmt.Fprintln(m.console.out, counterStyle.Render(fmt.Sprintf("%s: %d/%d", m.label, done, m.total)))
	}
}

// Finish terminates the meter's output line.
func (m *Meter) Finish() {
	if m.console.mode == ModeStyled && m.total > 0 {
		fmt.Fprintln(m.console.out)
	}
}
