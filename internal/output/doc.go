// Package output provides structured output handling for the relgate CLI.
//
// This package handles both human-readable and JSON output formats, so every
// command works equally well for human users and automated agents.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches format
// based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "All requirements satisfied"})
//	printer.Error(err)
//	printer.Violation("journal/week-01.md", "missing reflection section")
//
// # Exit Codes
//
// The package defines the exit code taxonomy and typed errors that carry it:
//
//	output.ExitSuccess      // 0: all requirements satisfied
//	output.ExitUserError    // 1: bad args, bad requirements doc, credentials problems
//	output.ExitSystemError  // 2: git/subprocess/I-O failure
//	output.ExitVerifyFailed // 3: missing file/tag or regex mismatches
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("requirements document is empty")
//	output.NewSystemError("git clone failed")
//	output.NewVerifyError("2 requirements not satisfied")
//
// These errors carry exit codes that are used for both JSON error output
// and the process exit code.
package output
