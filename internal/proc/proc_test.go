package proc

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

// requireShell skips tests that drive a POSIX shell on platforms without one.
func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRun_StdinRoundTrip(t *testing.T) {
	requireShell(t)

	result, err := Run(context.Background(), Command{
		Name:    "cat",
		Stdin:   "hello",
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.TimedOut {
		t.Fatal("Run() timed out, want completion")
	}
	if result.Stdout != "hello" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hello")
	}
	if result.Stderr != "" {
		t.Errorf("Stderr = %q, want empty", result.Stderr)
	}
}

func TestRun_NoStdinDoesNotHang(t *testing.T) {
	requireShell(t)

	// cat with no payload must see EOF immediately, not block on an
	// unconnected input stream.
	result, err := Run(context.Background(), Command{
		Name:    "cat",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Success() {
		t.Errorf("Run() = %+v, want clean exit", result)
	}
}

func TestRun_Timeout(t *testing.T) {
	requireShell(t)

	start := time.Now()
	result, err := Run(context.Background(), Command{
		Name:    "sleep",
		Args:    []string{"10"},
		Timeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.TimedOut {
		t.Fatal("Run() completed, want timeout")
	}
	// Timeout implies every other field is unset.
	if result.Stdout != "" || result.Stderr != "" || result.Code != 0 || result.Kind != "" {
		t.Errorf("timed-out result carries extra fields: %+v", result)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run() took %v, want prompt return after timeout", elapsed)
	}
}

func TestRun_TimeoutDiscardsOutput(t *testing.T) {
	requireShell(t)

	// The process writes before sleeping; the timeout path still reports
	// no output at all.
	result, err := Run(context.Background(), Command{
		Name:    "sh",
		Args:    []string{"-c", "echo partial; echo err 1>&2; sleep 10"},
		Timeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.TimedOut {
		t.Fatal("Run() completed, want timeout")
	}
	if result.Stdout != "" || result.Stderr != "" {
		t.Errorf("timed-out result carries output: stdout=%q stderr=%q", result.Stdout, result.Stderr)
	}
}

func TestRun_ExitCode(t *testing.T) {
	requireShell(t)

	result, err := Run(context.Background(), Command{
		Name:    "sh",
		Args:    []string{"-c", "exit 3"},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Kind != Exited {
		t.Errorf("Kind = %q, want %q", result.Kind, Exited)
	}
	if result.Code != 3 {
		t.Errorf("Code = %d, want 3", result.Code)
	}
	if result.Success() {
		t.Error("Success() = true for exit 3")
	}
}

func TestRun_StderrCaptured(t *testing.T) {
	requireShell(t)

	result, err := Run(context.Background(), Command{
		Name:    "sh",
		Args:    []string{"-c", "echo out; echo failure detail 1>&2; exit 1"},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stdout != "out" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "out")
	}
	if result.Stderr != "failure detail" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "failure detail")
	}
	if result.Code != 1 {
		t.Errorf("Code = %d, want 1", result.Code)
	}
}

func TestRun_WhitespaceOnlyOutputIsEmpty(t *testing.T) {
	requireShell(t)

	result, err := Run(context.Background(), Command{
		Name:    "sh",
		Args:    []string{"-c", "printf '\\n\\n'"},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stdout != "" {
		t.Errorf("Stdout = %q, want empty for whitespace-only output", result.Stdout)
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	result, err := Run(context.Background(), Command{
		Name:    "pwd",
		Dir:     dir,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Resolve through symlinks (macOS tempdirs live under /private).
	if result.Stdout == "" {
		t.Fatal("pwd produced no output")
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	_, err := Run(context.Background(), Command{
		Name:    "relgate-no-such-binary-xyzzy",
		Timeout: 5 * time.Second,
	})
	if err == nil {
		t.Fatal("Run() error = nil, want launch failure")
	}

	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("Run() error = %T, want *LaunchError", err)
	}
	if launchErr.Name != "relgate-no-such-binary-xyzzy" {
		t.Errorf("LaunchError.Name = %q", launchErr.Name)
	}
}

func TestRun_ParentContextCanceled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Command{
		Name:    "sleep",
		Args:    []string{"10"},
		Timeout: 30 * time.Second,
	})
	if err == nil {
		t.Fatal("Run() error = nil, want context error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestResult_Success(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{name: "clean exit", result: Result{Kind: Exited, Code: 0}, want: true},
		{name: "non-zero exit", result: Result{Kind: Exited, Code: 1}, want: false},
		{name: "signaled", result: Result{Kind: Signaled, Code: 9}, want: false},
		{name: "timed out", result: Result{TimedOut: true}, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.result.Success(); got != testCase.want {
				t.Errorf("Success() = %v, want %v", got, testCase.want)
			}
		})
	}
}
