package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	colorPhase   = lipgloss.Color("135") // Purple
	colorSuccess = lipgloss.Color("34")  // Green
	colorError   = lipgloss.Color("196") // Red
	colorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPhase)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	counterStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Console writes banners and progress for one run.
type Console struct {
	out  io.Writer
	mode Mode
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer, mode Mode) *Console {
	return &Console{out: out, mode: mode}
}

// Phase announces the start of a pipeline stage.
func (c *Console) Phase(text string) {
	if c.mode == ModeStyled {
		fmt.Fprintln(c.out, phaseStyle.Render(text+" ..."))
		return
	}
	fmt.Fprintf(c.out, "==> %s ...\n", text)
}

// Success announces a completed run.
func (c *Console) Success(text string) {
	if c.mode == ModeStyled {
		fmt.Fprintln(c.out, successStyle.Render(text))
		return
	}
	fmt.Fprintln(c.out, text)
}

// Failure announces a failed run.
func (c *Console) Failure(text string) {
	if c.mode == ModeStyled {
		fmt.Fprintln(c.out, errorStyle.Render(text))
		return
	}
	fmt.Fprintln(c.out, text)
}
