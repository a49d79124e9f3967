// Package main provides the entry point for the relgate CLI.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relgate/relgate/internal/output"
	"github.com/relgate/relgate/internal/requirement"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a requirement document",
		Long: `Interactively create a journal requirement document.

Prompts for release tags, the files required at each tag, and the regex
checks each file must satisfy, then writes the document as JSON.

Enter an empty tag name to finish the document, an empty file path to finish
a tag, and an empty regex to finish a file.

Examples:
  relgate init                                  # Write .relgate/requirements.json
  relgate init --output requirements.json       # Write elsewhere`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", requirement.DefaultPath, "Where to write the requirement document")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, outputPath string) error {
	printer := newPrinter(cmd)

	if isJSONMode(cmd) {
		err := output.NewUserError("init is interactive and does not support --json")
		printer.Error(err)
		return err
	}

	doc, err := gatherDoc(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	if err := requirement.Save(outputPath, doc); err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	stats := doc.Stats()
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Wrote %s (%d tags, %d files, %d checks)",
			outputPath, stats.Tags, stats.Files, stats.Checks),
	})
}

// gatherDoc collects a requirement document from interactive prompts.
func gatherDoc(in io.Reader, out io.Writer) (*requirement.Doc, error) {
	scanner := bufio.NewScanner(in)
	doc := &requirement.Doc{}

	for {
		tagName, err := prompt(scanner, out, "Tag name (empty to finish): ")
		if err != nil {
			return nil, err
		}
		if tagName == "" {
			break
		}

		tag := requirement.Tag{Name: tagName}
		if err := gatherFiles(scanner, out, &tag); err != nil {
			return nil, err
		}
		doc.Tags = append(doc.Tags, tag)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// gatherFiles collects the file requirements for one tag.
func gatherFiles(scanner *bufio.Scanner, out io.Writer, tag *requirement.Tag) error {
	for {
		path, err := prompt(scanner, out, fmt.Sprintf("  [%s] file path (empty to finish tag): ", tag.Name))
		if err != nil {
			return err
		}
		if path == "" {
			return nil
		}

		file := requirement.File{Path: path}
		if err := gatherChecks(scanner, out, path, &file); err != nil {
			return err
		}
		tag.Files = append(tag.Files, file)
	}
}

// gatherChecks collects the regex/message pairs for one file.
func gatherChecks(scanner *bufio.Scanner, out io.Writer, path string, file *requirement.File) error {
	for {
		regex, err := prompt(scanner, out, fmt.Sprintf("    [%s] regex (empty to finish file): ", path))
		if err != nil {
			return err
		}
		if regex == "" {
			return nil
		}
		message, err := prompt(scanner, out, "    message on mismatch: ")
		if err != nil {
			return err
		}
		file.Checks = append(file.Checks, requirement.Check{Regex: regex, Message: message})
	}
}

// prompt prints a prompt and reads one trimmed line. EOF reads as an empty
// answer so piped input terminates the dialog cleanly.
func prompt(scanner *bufio.Scanner, out io.Writer, text string) (string, error) {
	if _, err := fmt.Fprint(out, text); err != nil {
		return "", err
	}
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
