// Package proc runs external commands with captured output, optional stdin
// payloads, and a wall-clock timeout. It is the single subprocess harness for
// the relgate CLI; higher layers (git operations, verification) never touch
// os/exec directly.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultTimeout bounds a subprocess when the caller does not set one.
const DefaultTimeout = 30 * time.Second

// waitDelay is the grace period after a kill before Wait gives up on
// draining output pipes held open by grandchildren.
const waitDelay = 3 * time.Second

// TerminationKind describes how a completed process ended.
type TerminationKind string

const (
	// Exited means the process terminated on its own with an exit code.
	Exited TerminationKind = "exited"
	// Signaled means the process was terminated by a signal; the
	// termination code is the signal number.
	Signaled TerminationKind = "signaled"
)

// Command describes a single subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Stdin, when non-empty, is written to the process's input stream
	// which is then closed. When empty the input stream reads EOF
	// immediately, so commands that consume stdin never block.
	Stdin string
	// Dir is the working directory. Empty means the caller's.
	Dir string
	// Timeout bounds the wall-clock runtime. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Result is the completion status of a subprocess invocation.
//
// When TimedOut is true every other field is zero: the process was killed
// and its captured output discarded rather than waiting on writers that
// may never finish.
type Result struct {
	TimedOut bool
	Kind     TerminationKind
	// Code is the exit code for Exited, the signal number for Signaled.
	Code int
	// Stdout and Stderr are UTF-8 decoded and whitespace-trimmed.
	// Empty string means the stream produced no output.
	Stdout string
	Stderr string
}

// Success reports whether the process completed with a zero exit code.
func (r Result) Success() bool {
	return !r.TimedOut && r.Kind == Exited && r.Code == 0
}

// LaunchError reports that a process could not be started at all
// (missing executable, permission denied). It is deliberately a distinct
// kind from a timeout or a non-zero exit: the command never ran.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Run executes the command and blocks until it completes, times out, or the
// parent context is canceled.
//
// Output and error streams are always captured, whether or not the caller
// reads them; leaving them unpiped would let a killed process block forever
// on a full kernel buffer. A timeout yields Result{TimedOut: true} with a
// nil error; failure to launch yields a *LaunchError.
func Run(ctx context.Context, command Command) (Result, error) {
	timeout := command.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, command.Name, command.Args...)
	cmd.Dir = command.Dir
	cmd.WaitDelay = waitDelay
	if command.Stdin != "" {
		cmd.Stdin = strings.NewReader(command.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Result{}, &LaunchError{Name: command.Name, Err: err}
	}

	err := cmd.Wait()

	// A clean exit observed in the same instant the deadline fires counts
	// as completion, not timeout.
	if err == nil {
		return Result{
			Kind:   Exited,
			Code:   0,
			Stdout: trimOutput(stdout),
			Stderr: trimOutput(stderr),
		}, nil
	}

	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("running %s: %w", command.Name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			if execCtx.Err() == context.DeadlineExceeded {
				return Result{TimedOut: true}, nil
			}
			return Result{
				Kind:   Signaled,
				Code:   int(status.Signal()),
				Stdout: trimOutput(stdout),
				Stderr: trimOutput(stderr),
			}, nil
		}
		return Result{
			Kind:   Exited,
			Code:   exitErr.ExitCode(),
			Stdout: trimOutput(stdout),
			Stderr: trimOutput(stderr),
		}, nil
	}

	if execCtx.Err() == context.DeadlineExceeded {
		return Result{TimedOut: true}, nil
	}

	return Result{}, fmt.Errorf("running %s: %w", command.Name, err)
}

// trimOutput decodes a captured stream as text and trims surrounding
// whitespace, so a newline-only stream reads as "no output".
func trimOutput(buf bytes.Buffer) string {
	return strings.TrimSpace(buf.String())
}
