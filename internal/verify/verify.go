// Package verify implements the two-phase verification protocol for journal
// requirement documents.
//
// A verification run walks the requirement document in order: for each tag,
// for each file, for each regex check. Regex mismatches are soft failures:
// they are recorded and reported as they occur, and the run continues so
// every mismatch across all tags and files surfaces in one pass. Missing
// files, missing tags, and failed checkouts are fatal and abort the run.
//
// Local and remote runs differ deliberately. A remote run works on a fresh
// clone, which has no meaningful working-tree state, so each tag is checked
// out before its files are read. A local run leaves the working tree alone
// and checks file content first, then confirms the tag exists, so content
// problems are reported before the user creates the tag.
package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/relgate/relgate/internal/git"
	"github.com/relgate/relgate/internal/requirement"
)

// Mode selects local or remote verification semantics.
type Mode string

const (
	// Local verifies a pre-existing working tree without touching it.
	Local Mode = "local"
	// Remote verifies a fresh clone, checking out each tag in turn.
	Remote Mode = "remote"
)

// Violation is a single soft failure: a regex that did not match.
type Violation struct {
	Tag     string `json:"tag"`
	Path    string `json:"path"`
	Regex   string `json:"regex"`
	Message string `json:"message"`
}

// Report accumulates the soft failures of one verification run.
type Report struct {
	Mode       Mode        `json:"mode"`
	Violations []Violation `json:"violations"`
}

// OK reports whether every regex check passed.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// FileMissingError reports a required file absent from the working tree.
// Mode distinguishes the local and remote variants so the caller can say
// which side failed; Path is the same relative path in both.
type FileMissingError struct {
	Mode Mode
	Tag  string
	Path string
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("required file %s not present in %s copy (tag %s)", e.Path, e.Mode, e.Tag)
}

// TagMissingError reports a tag absent from local history. Only local runs
// query tag existence; remote runs materialize tags via checkout instead.
type TagMissingError struct {
	Tag string
}

func (e *TagMissingError) Error() string {
	return fmt.Sprintf("tag %s not present in local repository", e.Tag)
}

// Verifier drives the verification protocol. The zero value is usable;
// compiled regex patterns are cached per Verifier, keyed by pattern string.
type Verifier struct {
	Git *git.Git
	// Observer, when set, receives each violation as it is recorded.
	// Commands use it to print soft failures inline.
	Observer func(Violation)

	patterns map[string]*regexp.Regexp
}

// Run verifies the document against the working tree at repoRoot.
//
// The returned report collects every regex violation encountered; a non-nil
// error means a fatal condition aborted the run and the report covers only
// the checks performed before the abort.
func (v *Verifier) Run(ctx context.Context, doc *requirement.Doc, repoRoot string, mode Mode) (*Report, error) {
	report := &Report{Mode: mode}

	for _, tag := range doc.Tags {
		if mode == Remote {
			if err := v.gitClient().Checkout(ctx, repoRoot, tag.Name); err != nil {
				return report, err
			}
		}

		for _, file := range tag.Files {
			if err := v.checkFile(repoRoot, tag.Name, file, mode, report); err != nil {
				return report, err
			}
		}

		if mode == Local {
			ok, err := v.gitClient().TagExists(ctx, repoRoot, tag.Name)
			if err != nil {
				return report, err
			}
			if !ok {
				return report, &TagMissingError{Tag: tag.Name}
			}
		}
	}

	return report, nil
}

// checkFile confirms the file exists, reads it once, and evaluates each
// regex against its content. Mismatches are recorded, never returned.
func (v *Verifier) checkFile(repoRoot, tagName string, file requirement.File, mode Mode, report *Report) error {
	path := filepath.Join(repoRoot, file.Path)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileMissingError{Mode: mode, Tag: tagName, Path: file.Path}
		}
		return fmt.Errorf("reading %s: %w", file.Path, err)
	}

	for _, check := range file.Checks {
		pattern, err := v.compile(check.Regex)
		if err != nil {
			return fmt.Errorf("invalid pattern %q for %s: %w", check.Regex, file.Path, err)
		}
		if pattern.Match(content) {
			continue
		}
		violation := Violation{
			Tag:     tagName,
			Path:    file.Path,
			Regex:   check.Regex,
			Message: check.Message,
		}
		report.Violations = append(report.Violations, violation)
		if v.Observer != nil {
			v.Observer(violation)
		}
	}
	return nil
}

// RunRemoteClone clones the repository into a temporary directory, runs a
// remote verification against it, and removes the clone on every exit path,
// fatal aborts included.
func (v *Verifier) RunRemoteClone(ctx context.Context, doc *requirement.Doc, cloneURL, dirName string) (*Report, error) {
	parent, err := os.MkdirTemp("", "relgate-clone-")
	if err != nil {
		return nil, fmt.Errorf("creating clone directory: %w", err)
	}
	defer os.RemoveAll(parent)

	root, err := v.gitClient().Clone(ctx, cloneURL, dirName, parent)
	if err != nil {
		return nil, err
	}
	return v.Run(ctx, doc, root, Remote)
}

// compile returns the compiled pattern, reusing a prior compilation.
func (v *Verifier) compile(pattern string) (*regexp.Regexp, error) {
	if compiled, ok := v.patterns[pattern]; ok {
		return compiled, nil
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if v.patterns == nil {
		v.patterns = make(map[string]*regexp.Regexp)
	}
	v.patterns[pattern] = compiled
	return compiled, nil
}

func (v *Verifier) gitClient() *git.Git {
	if v.Git != nil {
		return v.Git
	}
	return &git.Git{}
}
