package output

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner character sets: braille dots for terminals, |/-\ when CHLOG_ASCII=1.
const (
	unicodeSpinnerSet = 14
	asciiSpinnerSet   = 9
)

// StartSpinner shows an animated spinner with message on w while a slow step
// such as a push runs, and returns the function that stops it. Nothing is
// drawn when w is not a terminal, so CI logs stay clean.
func StartSpinner(w io.Writer, message string) (stop func()) {
	if !IsTerminal(w) {
		return func() {}
	}

	set := unicodeSpinnerSet
	if os.Getenv("CHLOG_ASCII") == "1" {
		set = asciiSpinnerSet
	}

	s := spinner.New(spinner.CharSets[set], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
