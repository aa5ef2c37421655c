// Package output provides terminal output helpers for the chlog CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// PrintSuccess prints a green check mark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintSkipped prints a dim marker for a step that had nothing to do.
func PrintSkipped(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", dim("·"), dim(message))
}

// PrintFailure prints a red cross followed by message.
func PrintFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// DebugLogger returns a printf-style logger writing dim "[debug]" lines to out.
func DebugLogger(out io.Writer) func(format string, args ...any) {
	label := color.New(color.FgMagenta, color.Faint).SprintFunc()
	return func(format string, args ...any) {
		fmt.Fprintf(out, "%s %s\n", label("[debug]"), fmt.Sprintf(format, args...))
	}
}
