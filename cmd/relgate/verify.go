// Package main provides the entry point for the relgate CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/relgate/relgate/internal/config"
	"github.com/relgate/relgate/internal/creds"
	"github.com/relgate/relgate/internal/git"
	"github.com/relgate/relgate/internal/output"
	"github.com/relgate/relgate/internal/proc"
	"github.com/relgate/relgate/internal/requirement"
	"github.com/relgate/relgate/internal/verify"
)

// verifyFlags holds the command-line flags for the verify command.
type verifyFlags struct {
	requirements string
	repo         string
	credentials  string
	marker       string
	timeout      time.Duration
	localOnly    bool
	remoteOnly   bool
	keepClone    bool
}

// verifyResult holds the data for verify output.
type verifyResult struct {
	Success bool           `json:"success"`
	Local   *verify.Report `json:"local,omitempty"`
	Remote  *verify.Report `json:"remote,omitempty"`
}

// newVerifyCmd creates the verify command.
func newVerifyCmd() *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify journal requirements locally and against a fresh clone",
		Long: `Verify that the journal repository satisfies its requirement document.

Runs up to two phases, in order:

  LOCAL   - checks file content in the local working copy first, then confirms
            each release tag exists; content problems surface before tagging
  REMOTE  - clones the journal from the credentials-file URL into a temporary
            directory, checks out each tag, and re-checks every requirement

Regex mismatches are reported as they occur and never stop the run, so every
unsatisfied requirement surfaces in one pass. Missing files, missing tags,
and failed checkouts are fatal. Overall success requires both phases to pass.

Examples:
  relgate verify                      # Both phases
  relgate verify --local-only         # Working copy only, no clone
  relgate verify --remote-only        # Fresh clone only
  relgate verify --keep-clone         # Keep the remote clone for inspection
  relgate verify --json               # Structured result for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.requirements, "requirements", "r", "", "Requirement document path (default from relgate.yaml)")
	cmd.Flags().StringVar(&flags.repo, "repo", ".", "Local journal repository root")
	cmd.Flags().StringVar(&flags.credentials, "credentials", "", "Credentials file path (default from relgate.yaml)")
	cmd.Flags().StringVar(&flags.marker, "marker", "", "Journal marker in the credentials file (default from relgate.yaml)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Per-subprocess timeout (default from relgate.yaml)")
	cmd.Flags().BoolVar(&flags.localOnly, "local-only", false, "Skip the remote clone phase")
	cmd.Flags().BoolVar(&flags.remoteOnly, "remote-only", false, "Skip the local working-copy phase")
	cmd.Flags().BoolVar(&flags.keepClone, "keep-clone", false, "Clone into the current directory and keep it")

	return cmd
}

// runVerify executes the verify command.
func runVerify(cmd *cobra.Command, flags *verifyFlags) error {
	printer := newPrinter(cmd)

	if flags.localOnly && flags.remoteOnly {
		err := output.NewUserError("--local-only and --remote-only are mutually exclusive")
		printer.Error(err)
		return err
	}

	cfg, err := loadVerifyConfig(flags)
	if err != nil {
		exitErr := output.NewUserErrorWithCause("loading configuration: "+err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	doc, err := requirement.Load(resolveRepoPath(flags.repo, cfg.RequirementsFile))
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	verifier := &verify.Verifier{
		Git: &git.Git{Timeout: cfg.ProcessTimeout},
		Observer: func(v verify.Violation) {
			printer.Violation(v.Path, v.Message)
		},
	}

	result := &verifyResult{Success: true}

	if !flags.remoteOnly {
		result.Local, err = runLocalPhase(cmd, verifier, doc, flags.repo)
		if err != nil {
			exitErr := toExitError(err)
			printer.Error(exitErr)
			return exitErr
		}
		result.Success = result.Success && result.Local.OK()
	}

	if !flags.localOnly {
		result.Remote, err = runRemotePhase(cmd, verifier, doc, cfg, flags)
		if err != nil {
			exitErr := toExitError(err)
			printer.Error(exitErr)
			return exitErr
		}
		// Overall success is the conjunction of both phases. The local
		// result is never overwritten by the remote one.
		result.Success = result.Success && result.Remote.OK()
	}

	if !result.Success {
		total := 0
		if result.Local != nil {
			total += len(result.Local.Violations)
		}
		if result.Remote != nil {
			total += len(result.Remote.Violations)
		}
		exitErr := output.NewVerifyError(fmt.Sprintf("%d requirement check(s) not satisfied", total))
		if printer.IsJSON() {
			_ = printer.WriteJSON(result)
		} else {
			printer.Error(exitErr)
		}
		return exitErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	return printer.Success(map[string]any{"message": "All requirements satisfied"})
}

// loadVerifyConfig loads relgate.yaml from the repository root and applies
// flag overrides.
func loadVerifyConfig(flags *verifyFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(filepath.Join(flags.repo, config.FileName))
	if err != nil {
		return nil, err
	}
	if flags.requirements != "" {
		cfg.RequirementsFile = flags.requirements
	}
	if flags.credentials != "" {
		cfg.CredentialsFile = flags.credentials
	}
	if flags.marker != "" {
		cfg.JournalMarker = flags.marker
	}
	if flags.timeout > 0 {
		cfg.ProcessTimeout = flags.timeout
	}
	return cfg, nil
}

// resolveRepoPath joins a possibly-relative path with the repository root.
func resolveRepoPath(repo, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repo, path)
}

// runLocalPhase verifies the pre-existing working copy.
func runLocalPhase(cmd *cobra.Command, verifier *verify.Verifier, doc *requirement.Doc, repo string) (*verify.Report, error) {
	if !git.IsRepo(repo) {
		return nil, output.NewSystemError(fmt.Sprintf("%s is not a git repository", repo))
	}
	return verifier.Run(cmd.Context(), doc, repo, verify.Local)
}

// runRemotePhase resolves the clone URL from the credentials file and
// verifies a fresh clone.
func runRemotePhase(cmd *cobra.Command, verifier *verify.Verifier, doc *requirement.Doc, cfg *config.Config, flags *verifyFlags) (*verify.Report, error) {
	text, err := creds.LoadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	cloneURL, err := creds.Resolve(text, cfg.JournalMarker)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	dirName := creds.CloneDirName(cloneURL)

	if flags.keepClone {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, output.NewSystemErrorWithCause("resolving working directory", err)
		}
		root, err := verifier.Git.Clone(cmd.Context(), cloneURL.String(), dirName, cwd)
		if err != nil {
			return nil, err
		}
		newPrinter(cmd).Stderr("Keeping clone at %s\n", root)
		return verifier.Run(cmd.Context(), doc, root, verify.Remote)
	}

	return verifier.RunRemoteClone(cmd.Context(), doc, cloneURL.String(), dirName)
}

// toExitError maps verification and subprocess error kinds onto the exit
// code taxonomy. Unrecognized errors fall through untyped and exit as user
// errors.
func toExitError(err error) error {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var (
		fileMissing *verify.FileMissingError
		tagMissing  *verify.TagMissingError
		cloneErr    *git.CloneError
		checkoutErr *git.CheckoutError
		timeoutErr  *git.TimeoutError
		launchErr   *proc.LaunchError
	)
	switch {
	case errors.As(err, &fileMissing), errors.As(err, &tagMissing):
		return output.NewVerifyErrorWithCause(err.Error(), err)
	case errors.As(err, &cloneErr), errors.As(err, &checkoutErr),
		errors.As(err, &timeoutErr), errors.As(err, &launchErr):
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
	return err
}
