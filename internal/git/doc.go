// Package git provides the Git operations used by relgate verification.
//
// This package wraps the git executable through the internal/proc harness,
// capturing stdout/stderr and translating completion statuses to typed
// errors. Only the operations the verification protocol needs are exposed:
//
//	g := &git.Git{Timeout: 30 * time.Second}
//	root, err := g.Clone(ctx, cloneURL, "journal-2026", tmpDir)
//	err = g.Checkout(ctx, root, "v1.0")
//	ok, err := g.TagExists(ctx, root, "v1.0")
//
// # Error Handling
//
// Clone and checkout failures return *CloneError and *CheckoutError carrying
// the stderr git produced; both are fatal to a verification run. A git
// process killed by its deadline returns *TimeoutError, and a missing git
// binary surfaces as *proc.LaunchError from the harness.
package git
