package main

import (
	"os"

	"golang.org/x/term"
)

// colorEnabled reports whether diagnostics should use ANSI color.
// Color is off when NO_COLOR is set or stderr is not a terminal.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
