// Package main provides the entry point for the relgate CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relgate/relgate/internal/config"
	"github.com/relgate/relgate/internal/creds"
	"github.com/relgate/relgate/internal/git"
	"github.com/relgate/relgate/internal/proc"
	"github.com/relgate/relgate/internal/requirement"
)

// runEnvironmentChecks checks the git binary and local repository.
func runEnvironmentChecks(cmd *cobra.Command, repo string, cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkGitBinary(cmd, cfg))
	checks = append(checks, checkLocalRepo(repo))
	return checks
}

// checkGitBinary confirms git launches through the subprocess harness.
func checkGitBinary(cmd *cobra.Command, cfg *config.Config) checkResult {
	result, err := proc.Run(cmd.Context(), proc.Command{
		Name:    "git",
		Args:    []string{"version"},
		Timeout: cfg.ProcessTimeout,
	})
	if err != nil || !result.Success() {
		return checkResult{
			Name:    "Git Binary",
			Status:  checkFail,
			Message: "git could not be run",
			Hint:    "Install git and ensure it is in PATH",
		}
	}
	return checkResult{
		Name:    "Git Binary",
		Status:  checkPass,
		Message: result.Stdout,
	}
}

// checkLocalRepo confirms the repository root is a git working tree.
func checkLocalRepo(repo string) checkResult {
	if git.IsRepo(repo) {
		return checkResult{
			Name:    "Local Repository",
			Status:  checkPass,
			Message: fmt.Sprintf("%s is a git repository", repo),
		}
	}
	return checkResult{
		Name:    "Local Repository",
		Status:  checkWarn,
		Message: fmt.Sprintf("%s is not a git repository", repo),
		Hint:    "Run doctor from the journal root or pass --repo",
	}
}

// runJournalChecks checks the requirement document.
func runJournalChecks(repo string, cfg *config.Config) []checkResult {
	path := resolveRepoPath(repo, cfg.RequirementsFile)

	doc, err := requirement.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []checkResult{{
				Name:    "Requirement Document",
				Status:  checkFail,
				Message: path + " not found",
				Hint:    "Run 'relgate init' to create one",
			}}
		}
		return []checkResult{{
			Name:    "Requirement Document",
			Status:  checkFail,
			Message: err.Error(),
		}}
	}

	stats := doc.Stats()
	return []checkResult{{
		Name:   "Requirement Document",
		Status: checkPass,
		Message: fmt.Sprintf("%d tags, %d files, %d checks",
			stats.Tags, stats.Files, stats.Checks),
	}}
}

// runCredentialChecks checks the credentials file and clone URL.
func runCredentialChecks(cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)

	text, err := creds.LoadFile(cfg.CredentialsFile)
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "Credentials File",
			Status:  checkFail,
			Message: cfg.CredentialsFile + " could not be read",
			Hint:    "Set credentials_file in relgate.yaml or RELGATE_CREDENTIALS_FILE",
		})
		return checks
	}
	checks = append(checks, checkResult{
		Name:    "Credentials File",
		Status:  checkPass,
		Message: cfg.CredentialsFile,
	})

	cloneURL, err := creds.Resolve(text, cfg.JournalMarker)
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "Clone URL",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    fmt.Sprintf("Expect exactly one line containing %q with user and password", cfg.JournalMarker),
		})
		return checks
	}
	checks = append(checks, checkResult{
		Name:    "Clone URL",
		Status:  checkPass,
		Message: cloneURL.Host + " (" + creds.CloneDirName(cloneURL) + ")",
	})
	return checks
}
