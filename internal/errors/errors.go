// Package errors provides structured error handling for the chlog CLI.
// It includes categorized errors with actionable remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Configuration errors are caused by invalid or missing configuration,
	// including required environment variables.
	Configuration
	// Prerequisite errors occur when a required file, directory or repository is missing.
	Prerequisite
	// Policy errors are deliberate hard stops, such as more than one
	// unrenamed fragment in a category.
	Policy
	// Remote errors occur when talking to the git remote (push rejected or failing).
	Remote
	// Runtime errors occur during command execution.
	Runtime
)

var categoryNames = [...]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Policy:        "Policy Violation",
	Remote:        "Remote Error",
	Runtime:       "Runtime Error",
}

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Error"
	}
	return categoryNames[c]
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Configuration, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for argument errors).
	Usage string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// New creates a CLIError in category with remediation steps.
func New(category ErrorCategory, message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
	}
}

// WithUsage attaches the correct command syntax and returns e.
func (e *CLIError) WithUsage(usage string) *CLIError {
	e.Usage = usage
	return e
}

// WithCause records err as the underlying cause and returns e.
func (e *CLIError) WithCause(err error) *CLIError {
	e.Err = err
	return e
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return New(category, err.Error(), remediation...).WithCause(err)
}

// Wrapf wraps err with a formatted context message, as in "pushing: <err>".
func Wrapf(err error, category ErrorCategory, format string, args ...any) *CLIError {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf("%s: %v", fmt.Sprintf(format, args...), err)
	return New(category, message).WithCause(err)
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
