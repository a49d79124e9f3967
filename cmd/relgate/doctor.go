// Package main provides the entry point for the relgate CLI.
package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relgate/relgate/internal/config"
	"github.com/relgate/relgate/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version     string         `json:"version"`
	Environment []checkResult  `json:"environment"`
	Journal     []checkResult  `json:"journal"`
	Credentials []checkResult  `json:"credentials"`
	Summary     *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// doctorFlags holds the command-line flags for the doctor command.
type doctorFlags struct {
	repo  string
	quiet bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that verification can run and suggest fixes",
		Long: `Check that relgate can verify this journal and suggest fixes.

Runs a series of health checks across three categories:
  ENVIRONMENT - git binary and local repository
  JOURNAL     - requirement document presence and validity
  CREDENTIALS - credentials file and journal clone URL

Each check reports:
  Pass    - Check passed successfully
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

Examples:
  relgate doctor              # Run all health checks
  relgate doctor --quiet      # Only show failures and warnings
  relgate doctor --json       # Output results as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.repo, "repo", ".", "Local journal repository root")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	printer := newPrinter(cmd)

	cfg, err := config.LoadOrDefault(filepath.Join(flags.repo, config.FileName))
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	result := gatherDoctorChecks(cmd, cfg, flags)

	if printer.IsJSON() {
		if err := printer.WriteJSON(result); err != nil {
			return err
		}
	} else {
		outputDoctorHuman(printer, result, flags.quiet)
	}

	if result.Summary.Failed > 0 {
		return output.NewSystemError("doctor found failing checks")
	}
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command, cfg *config.Config, flags *doctorFlags) *doctorResult {
	result := &doctorResult{
		Version:     version,
		Environment: runEnvironmentChecks(cmd, flags.repo, cfg),
		Journal:     runJournalChecks(flags.repo, cfg),
		Credentials: runCredentialChecks(cfg),
		Summary:     &doctorSummary{},
	}

	allChecks := append(append(result.Environment, result.Journal...), result.Credentials...)
	for _, check := range allChecks {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	return result
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("relgate doctor v%s\n", result.Version)

	printCheckSection(printer, "ENVIRONMENT", result.Environment, quiet)
	printCheckSection(printer, "JOURNAL", result.Journal, quiet)
	printCheckSection(printer, "CREDENTIALS", result.Credentials, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	// In quiet mode, skip sections with only passing checks
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Println()
	printer.Println(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}

		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("      hint: %s\n", check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
