package errors

import "fmt"

// Common error messages for the chlog CLI.

// MissingEnvironment creates an error for a required environment variable that is unset.
func MissingEnvironment(name, purpose string) *CLIError {
	return New(Configuration,
		fmt.Sprintf("environment variable %s is required", name),
		fmt.Sprintf("Export %s (%s) before running this command", name, purpose),
		"In GitHub Actions, pass it through the step's env: block",
	)
}

// NotARepository creates an error for a working directory outside any git repository.
func NotARepository(path string, cause error) *CLIError {
	return New(Prerequisite,
		fmt.Sprintf("%s is not inside a git repository", path),
		"Run chlog from the repository checkout",
		"Make sure actions/checkout ran before this step",
	).WithCause(cause)
}

// PushFailed creates an error for a rejected or failing push.
func PushFailed(remote string, err error) *CLIError {
	cliErr := Wrapf(err, Remote, "pushing to %s failed", remote)
	cliErr.Remediation = []string{
		"Check that the token has contents: write permission",
		"Rebase the branch if the remote moved ahead, then re-run the job",
	}
	return cliErr
}

// TooManyFragments creates the policy error raised when a category holds
// more than one fragment that is not named after a pull request.
func TooManyFragments(dir string, cause error) *CLIError {
	return New(Policy, cause.Error(),
		"Each pull request adds exactly one new fragment per category",
		fmt.Sprintf("Merge the pending files in %s into one", dir),
	).WithCause(cause)
}

// ChangelogOutOfSync creates an error reported by 'chlog check'.
func ChangelogOutOfSync(path string) *CLIError {
	return New(Runtime,
		fmt.Sprintf("%s is out of sync with the changelog fragments", path),
		"Run 'chlog sync --no-push' and commit the result",
	)
}
