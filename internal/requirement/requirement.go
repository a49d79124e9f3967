// Package requirement provides the schema, validation, and serialization for
// journal requirement documents.
//
// A requirement document is the compliance contract for a journal repository:
// an ordered list of release tags, each naming the files that must exist at
// that tag and the regex checks their content must satisfy. Order is
// significant everywhere; verification processes tags, files, and checks in
// document order.
package requirement

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Doc is a full journal requirement: the ordered tags a repository must carry.
type Doc struct {
	Tags []Tag
}

// Tag names a release tag and the file requirements that must hold at it.
type Tag struct {
	Name  string `json:"tagName"`
	Files []File `json:"fileRequirements"`
}

// File names a version-controlled file and the content checks it must pass.
// Path is always relative to the repository root.
type File struct {
	Path   string  `json:"filePathname"`
	Checks []Check `json:"regexMessages"`
}

// Check pairs a regex pattern with the message reported when it fails to
// match. Patterns are plain strings here; they are compiled at check time.
type Check struct {
	Regex   string `json:"regex"`
	Message string `json:"message"`
}

// ValidationError is returned when a requirement document is malformed.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the document invariants: at least one tag, non-empty tag
// names, and file paths that are relative to the repository root.
func (d *Doc) Validate() error {
	if len(d.Tags) == 0 {
		return &ValidationError{Message: "requirement document has no tags"}
	}
	for i, tag := range d.Tags {
		if strings.TrimSpace(tag.Name) == "" {
			return &ValidationError{Message: fmt.Sprintf("tag %d has an empty name", i+1)}
		}
		for _, file := range tag.Files {
			if file.Path == "" {
				return &ValidationError{
					Message: fmt.Sprintf("tag %s has a file requirement with an empty path", tag.Name),
				}
			}
			if filepath.IsAbs(file.Path) {
				return &ValidationError{
					Message: fmt.Sprintf("file path %s must be relative to the repository root", file.Path),
				}
			}
		}
	}
	return nil
}

// Stats summarizes a document for status and agent output.
type Stats struct {
	Tags   int `json:"tags"`
	Files  int `json:"files"`
	Checks int `json:"checks"`
}

// Stats returns counts of tags, file requirements, and regex checks.
func (d *Doc) Stats() Stats {
	stats := Stats{Tags: len(d.Tags)}
	for _, tag := range d.Tags {
		stats.Files += len(tag.Files)
		for _, file := range tag.Files {
			stats.Checks += len(file.Checks)
		}
	}
	return stats
}
