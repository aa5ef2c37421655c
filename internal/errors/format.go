package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// palette styles each part of a formatted error.
type palette struct {
	label    func(a ...any) string
	category func(a ...any) string
	policy   func(a ...any) string
	message  func(a ...any) string
	heading  func(a ...any) string
	usage    func(a ...any) string
	bullet   func(a ...any) string
}

var (
	colored = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		policy:   color.New(color.FgMagenta, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		heading:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
	}
	plain = palette{
		label:    fmt.Sprint,
		category: fmt.Sprint,
		policy:   fmt.Sprint,
		message:  fmt.Sprint,
		heading:  fmt.Sprint,
		usage:    fmt.Sprint,
		bullet:   fmt.Sprint,
	}
)

// FormatError formats a CLIError for display in the terminal. Colors follow
// fatih/color's detection, so NO_COLOR and non-terminal stdout give plain text.
func FormatError(err *CLIError) string {
	if color.NoColor {
		return FormatErrorPlain(err)
	}
	return format(err, colored)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	return format(err, plain)
}

// format renders:
//
//	Error [<category>]: <message>
//
//	Usage: <usage>
//
//	To fix this:
//	  • <step>
func format(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	categoryStyle := p.category
	if err.Category == Policy {
		categoryStyle = p.policy
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), categoryStyle(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.heading("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.heading("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted error to w. Plain errors are reported as
// Runtime errors. Colors are only used when w is a terminal.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime)
	}
	if isTerminal(w) {
		fmt.Fprint(w, FormatError(cliErr))
		return
	}
	fmt.Fprint(w, FormatErrorPlain(cliErr))
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
