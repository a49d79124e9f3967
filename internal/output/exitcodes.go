package output

import "errors"

// Exit codes:
// 0 = Success (all requirements satisfied)
// 1 = User error (bad args, unparseable requirements, credentials problems)
// 2 = System error (git failed, subprocess launch/timeout, I/O error)
// 3 = Verification failure (missing file/tag, regex mismatches)
const (
	ExitSuccess      = 0
	ExitUserError    = 1
	ExitSystemError  = 2
	ExitVerifyFailed = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, malformed requirement documents, credentials
// files with the wrong number of journal lines.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewUserErrorWithCause creates a user error wrapping an underlying cause.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: clone/checkout failures, subprocess launch failures and
// timeouts, I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewVerifyError creates an error for verification failures (exit code 3).
// Use for: required files or tags missing, accumulated regex mismatches.
func NewVerifyError(message string) *ExitError {
	return &ExitError{
		Code:    ExitVerifyFailed,
		Message: message,
	}
}

// NewVerifyErrorWithCause creates a verification error wrapping an underlying cause.
func NewVerifyErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitVerifyFailed,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
