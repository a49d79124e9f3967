package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false) // json=true, tty=false

	data := map[string]any{
		"success": true,
		"mode":    "local",
	}

	err := printer.Success(data)
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["success"] != true {
		t.Errorf("success = %v, want true", result["success"])
	}
	if result["mode"] != "local" {
		t.Errorf("mode = %v, want %q", result["mode"], "local")
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewVerifyError("required file journal/week-01.md not present"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["error"] != "required file journal/week-01.md not present" {
		t.Errorf("error = %v, want file-not-present message", result["error"])
	}
	if int(result["code"].(float64)) != ExitVerifyFailed {
		t.Errorf("code = %v, want %d", result["code"], ExitVerifyFailed)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	err := printer.Success(map[string]any{"message": "All requirements satisfied"})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	if !strings.Contains(buf.String(), "All requirements satisfied") {
		t.Errorf("output = %q, want success message", buf.String())
	}
}

func TestPrinter_Human_ErrorToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(NewSystemError("git clone failed"))

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(errOut.String(), "git clone failed") {
		t.Errorf("stderr = %q, want clone failure message", errOut.String())
	}
}

func TestPrinter_Violation(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Violation("journal/week-01.md", "missing reflection section")

	if !strings.Contains(errOut.String(), "journal/week-01.md") {
		t.Errorf("stderr = %q, want path", errOut.String())
	}
	if !strings.Contains(errOut.String(), "missing reflection section") {
		t.Errorf("stderr = %q, want message", errOut.String())
	}
}

func TestPrinter_Violation_SuppressedInJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Violation("journal/week-01.md", "missing reflection section")

	if buf.Len() != 0 {
		t.Errorf("JSON mode violation output = %q, want empty", buf.String())
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "user error", err: NewUserError("bad args"), want: ExitUserError},
		{name: "system error", err: NewSystemError("git failed"), want: ExitSystemError},
		{name: "verify error", err: NewVerifyError("file missing"), want: ExitVerifyFailed},
		{name: "untyped error", err: errors.New("something"), want: ExitUserError},
		{name: "wrapped exit error", err: wrapError(NewSystemError("inner")), want: ExitSystemError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := GetExitCode(testCase.err); got != testCase.want {
				t.Errorf("GetExitCode() = %d, want %d", got, testCase.want)
			}
		})
	}
}

func wrapError(err error) error {
	return &wrappingError{inner: err}
}

type wrappingError struct {
	inner error
}

func (w *wrappingError) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrappingError) Unwrap() error { return w.inner }

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		isTTY bool
		want  bool
	}{
		{name: "never on tty", mode: "never", isTTY: true, want: false},
		{name: "always on pipe", mode: "always", isTTY: false, want: true},
		{name: "auto on tty", mode: "auto", isTTY: true, want: true},
		{name: "auto on pipe", mode: "auto", isTTY: false, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := ResolveColorMode(testCase.mode, testCase.isTTY); got != testCase.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v",
					testCase.mode, testCase.isTTY, got, testCase.want)
			}
		})
	}
}
