// Package ui provides terminal detection and render styles for the CLI.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor reports whether the NO_COLOR convention is in effect.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// StylesFor picks colored or plain styles for a writer.
func StylesFor(w io.Writer) Styles {
	if IsTerminal(w) && !DetectNoColor() {
		return DefaultStyles()
	}
	return PlainStyles()
}
