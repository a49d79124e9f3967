package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/relgate/relgate/internal/proc"
)

// Git runs git subcommands through the proc harness. The zero value is
// usable and applies proc.DefaultTimeout to every invocation.
type Git struct {
	// Timeout bounds each individual git subprocess.
	Timeout time.Duration
}

// CloneError reports a failed clone, carrying the stderr git produced.
type CloneError struct {
	Dest   string
	Stderr string
}

func (e *CloneError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("cloning into %s failed", e.Dest)
	}
	return fmt.Sprintf("cloning into %s failed: %s", e.Dest, e.Stderr)
}

// CheckoutError reports a failed tag checkout. Checkout failures are fatal
// for a verification run: later file checks would read the wrong revision.
type CheckoutError struct {
	Tag    string
	Stderr string
}

func (e *CheckoutError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("checking out tag %s failed", e.Tag)
	}
	return fmt.Sprintf("checking out tag %s failed: %s", e.Tag, e.Stderr)
}

// TimeoutError reports a git subprocess killed by its deadline. Git commands
// are short-lived; hitting the timeout means something is wedged, and the
// killed process left no usable output behind.
type TimeoutError struct {
	// Op is the git subcommand that was running.
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("git %s timed out", e.Op)
}

// run invokes one git subcommand in dir and returns its completion status.
func (g *Git) run(ctx context.Context, dir string, args ...string) (proc.Result, error) {
	result, err := proc.Run(ctx, proc.Command{
		Name:    "git",
		Args:    args,
		Dir:     dir,
		Timeout: g.Timeout,
	})
	if err != nil {
		return proc.Result{}, err
	}
	if result.TimedOut {
		return proc.Result{}, &TimeoutError{Op: args[0]}
	}
	return result, nil
}

// Clone clones cloneURL into a directory named dest under parentDir and
// returns the path of the new working tree.
func (g *Git) Clone(ctx context.Context, cloneURL, dest, parentDir string) (string, error) {
	result, err := g.run(ctx, parentDir, "clone", cloneURL, dest)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", &CloneError{Dest: dest, Stderr: result.Stderr}
	}
	return filepath.Join(parentDir, dest), nil
}

// Checkout makes the working tree at repoRoot reflect the given tag.
func (g *Git) Checkout(ctx context.Context, repoRoot, tag string) error {
	result, err := g.run(ctx, repoRoot, "checkout", tag)
	if err != nil {
		return err
	}
	if !result.Success() {
		return &CheckoutError{Tag: tag, Stderr: result.Stderr}
	}
	return nil
}

// TagExists reports whether tag resolves to a commit in the repository at
// repoRoot. This is a lightweight existence query; the working tree is not
// touched and the resolved revision is discarded.
func (g *Git) TagExists(ctx context.Context, repoRoot, tag string) (bool, error) {
	result, err := g.run(ctx, repoRoot, "rev-list", "-n", "1", tag)
	if err != nil {
		return false, err
	}
	return result.Success(), nil
}

// IsRepo reports whether dir is the root of a git working tree.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}
