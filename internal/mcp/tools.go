package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/relgate/relgate/internal/config"
	"github.com/relgate/relgate/internal/creds"
	"github.com/relgate/relgate/internal/git"
	"github.com/relgate/relgate/internal/requirement"
	"github.com/relgate/relgate/internal/verify"
)

// VerifyInput is the input for the verify tool.
type VerifyInput struct {
	Mode string `json:"mode,omitempty" jsonschema:"verification mode: local, remote, or both (default both)"`
}

// VerifyOutput is the output for the verify tool.
type VerifyOutput struct {
	Success bool           `json:"success" jsonschema:"true when every check in every phase passed"`
	Local   *verify.Report `json:"local,omitempty" jsonschema:"local working-copy phase report"`
	Remote  *verify.Report `json:"remote,omitempty" jsonschema:"fresh-clone phase report"`
}

func handleVerify(repoRoot string) mcp.ToolHandlerFor[VerifyInput, VerifyOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input VerifyInput) (*mcp.CallToolResult, VerifyOutput, error) {
		mode := input.Mode
		if mode == "" {
			mode = "both"
		}
		if mode != "local" && mode != "remote" && mode != "both" {
			return nil, VerifyOutput{}, fmt.Errorf("mode must be local, remote, or both, got %q", input.Mode)
		}

		cfg, doc, err := loadJournal(repoRoot)
		if err != nil {
			return nil, VerifyOutput{}, err
		}

		verifier := &verify.Verifier{Git: &git.Git{Timeout: cfg.ProcessTimeout}}
		out := VerifyOutput{Success: true}

		if mode == "local" || mode == "both" {
			if !git.IsRepo(repoRoot) {
				return nil, VerifyOutput{}, fmt.Errorf("%s is not a git repository", repoRoot)
			}
			report, err := verifier.Run(ctx, doc, repoRoot, verify.Local)
			if err != nil {
				return nil, VerifyOutput{}, err
			}
			out.Local = report
			out.Success = out.Success && report.OK()
		}

		if mode == "remote" || mode == "both" {
			cloneURL, dirName, err := resolveClone(cfg)
			if err != nil {
				return nil, VerifyOutput{}, err
			}
			report, err := verifier.RunRemoteClone(ctx, doc, cloneURL, dirName)
			if err != nil {
				return nil, VerifyOutput{}, err
			}
			out.Remote = report
			out.Success = out.Success && report.OK()
		}

		return nil, out, nil
	}
}

// RequirementsInput is the input for the requirements tool.
type RequirementsInput struct{}

// RequirementsOutput is the output for the requirements tool.
type RequirementsOutput struct {
	Stats requirement.Stats `json:"stats" jsonschema:"tag, file, and check counts"`
	Tags  []requirement.Tag `json:"tags" jsonschema:"the requirement document in verification order"`
}

func handleRequirements(repoRoot string) mcp.ToolHandlerFor[RequirementsInput, RequirementsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ RequirementsInput) (*mcp.CallToolResult, RequirementsOutput, error) {
		_, doc, err := loadJournal(repoRoot)
		if err != nil {
			return nil, RequirementsOutput{}, err
		}
		return nil, RequirementsOutput{Stats: doc.Stats(), Tags: doc.Tags}, nil
	}
}

// StatusInput is the input for the status tool.
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Repo             string             `json:"repo" jsonschema:"local repository root"`
	IsRepo           bool               `json:"is_repo" jsonschema:"whether the root is a git working tree"`
	RequirementsFile string             `json:"requirements_file" jsonschema:"requirement document path"`
	Stats            *requirement.Stats `json:"stats,omitempty" jsonschema:"requirement document stats when it loads"`
	CredentialsOK    bool               `json:"credentials_ok" jsonschema:"whether the credentials file resolves a clone URL"`
	CredentialsError string             `json:"credentials_error,omitempty" jsonschema:"resolution failure detail"`
}

func handleStatus(repoRoot string) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		cfg, err := config.LoadOrDefault(filepath.Join(repoRoot, config.FileName))
		if err != nil {
			return nil, StatusOutput{}, err
		}

		out := StatusOutput{
			Repo:             repoRoot,
			IsRepo:           git.IsRepo(repoRoot),
			RequirementsFile: cfg.RequirementsFile,
		}

		if doc, err := requirement.Load(requirementsPath(repoRoot, cfg)); err == nil {
			stats := doc.Stats()
			out.Stats = &stats
		}

		if _, _, err := resolveClone(cfg); err != nil {
			out.CredentialsError = err.Error()
		} else {
			out.CredentialsOK = true
		}

		return nil, out, nil
	}
}

// loadJournal loads the repository config and its requirement document.
func loadJournal(repoRoot string) (*config.Config, *requirement.Doc, error) {
	cfg, err := config.LoadOrDefault(filepath.Join(repoRoot, config.FileName))
	if err != nil {
		return nil, nil, err
	}
	doc, err := requirement.Load(requirementsPath(repoRoot, cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, doc, nil
}

// requirementsPath resolves the requirement document path against the root.
func requirementsPath(repoRoot string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.RequirementsFile) {
		return cfg.RequirementsFile
	}
	return filepath.Join(repoRoot, cfg.RequirementsFile)
}

// resolveClone resolves the clone URL and destination name from the
// credentials file.
func resolveClone(cfg *config.Config) (cloneURL, dirName string, err error) {
	text, err := creds.LoadFile(cfg.CredentialsFile)
	if err != nil {
		return "", "", err
	}
	parsed, err := creds.Resolve(text, cfg.JournalMarker)
	if err != nil {
		return "", "", err
	}
	return parsed.String(), creds.CloneDirName(parsed), nil
}
