// Package ui renders the operator-facing surface of a migration run: styled
// phase banners and a progress meter. Everything degrades to plain text when
// stdout is not a terminal so logs from scheduled runs stay readable.
package ui

import (
	"os"

	"golang.org/x/term"
)

// Mode is the rendering mode for banners and progress.
type Mode int

const (
	// ModePlain is used for CI, scripts, and piped output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is at the terminal.
	ModeStyled
)

// DetectMode returns ModePlain if:
//   - EXODUS_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdout is not a terminal
func DetectMode() Mode {
	if os.Getenv("EXODUS_NON_INTERACTIVE") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModePlain
	}
	return ModeStyled
}
