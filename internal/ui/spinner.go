package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// waitModel animates an indeterminate wait, for stages with no countable
// steps (profile download, collection sweeps).
type waitModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

type waitDoneMsg struct{}

func newWaitModel(label string) waitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = phaseStyle
	return waitModel{spinner: s, label: label}
}

// Init implements tea.Model.
func (m waitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case waitDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m waitModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + counterStyle.Render(m.label)
}

// Wait runs fn, animating a spinner until it returns. Plain mode prints the
// label once and runs fn directly.
func (c *Console) Wait(label string, fn func() error) error {
	if c.mode == ModePlain {
		fmt.Fprintf(c.out, "%s ...\n", label)
		return fn()
	}

	prog := tea.NewProgram(newWaitModel(label), tea.WithOutput(c.out), tea.WithoutSignalHandler())
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
		prog.Send(waitDoneMsg{})
	}()
	if _, err := prog.Run(); err != nil {
		// terminal could not host the program; fn still ran
		return <-errCh
	}
	return <-errCh
}
