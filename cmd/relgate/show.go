// Package main provides the entry point for the relgate CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relgate/relgate/internal/output"
	"github.com/relgate/relgate/internal/requirement"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var requirementsPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the requirement document",
		Long: `Display the journal requirement document.

Shows each release tag with its required files and regex checks, in the
order verification will process them.

Examples:
  relgate show                          # Human-readable listing
  relgate show --json                   # Raw document as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, requirementsPath)
		},
	}

	cmd.Flags().StringVarP(&requirementsPath, "requirements", "r", requirement.DefaultPath, "Requirement document path")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, requirementsPath string) error {
	printer := newPrinter(cmd)

	doc, err := requirement.Load(requirementsPath)
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(doc.Tags)
	}

	stats := doc.Stats()
	printer.KeyValue("Document", requirementsPath)
	printer.KeyValue("Tags", fmt.Sprintf("%d", stats.Tags))
	printer.KeyValue("Checks", fmt.Sprintf("%d across %d files", stats.Checks, stats.Files))

	for _, tag := range doc.Tags {
		printer.Section(tag.Name)
		for _, file := range tag.Files {
			printer.Println(file.Path)
			for _, check := range file.Checks {
				printer.Print("  %s  %s\n", check.Regex, check.Message)
			}
		}
	}
	return nil
}
