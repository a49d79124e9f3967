// Package creds resolves the journal clone URL from a line-oriented
// credentials file.
//
// The credentials file holds one URL per line for various services; exactly
// one line is expected to mention the journal marker. That line must be a
// URL carrying both a username and a password, since the clone runs
// non-interactively.
package creds

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
)

// DefaultMarker is the case-insensitive substring that identifies the
// journal line in a credentials file.
const DefaultMarker = "journal"

// Resolution error kinds, distinguishable with errors.Is.
var (
	ErrNoMatch         = errors.New("no credentials line matches the journal marker")
	ErrMultipleMatches = errors.New("multiple credentials lines match the journal marker")
	ErrMissingUser     = errors.New("clone URL has no username")
	ErrMissingPassword = errors.New("clone URL has no password")
)

// LoadFile reads the credentials file as text.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading credentials file: %w", err)
	}
	return string(data), nil
}

// Resolve scans the credentials text for exactly one line containing marker
// (case-insensitive) and parses it as the clone URL. Zero or multiple
// matching lines, an unparseable URL, and a URL missing the username or
// password are each distinct errors.
func Resolve(text, marker string) (*url.URL, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	needle := strings.ToLower(marker)

	var matched string
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(strings.ToLower(line), needle) {
			matched = line
			count++
		}
	}

	switch {
	case count == 0:
		return nil, fmt.Errorf("%w (marker %q)", ErrNoMatch, marker)
	case count > 1:
		return nil, fmt.Errorf("%w (marker %q, %d matches)", ErrMultipleMatches, marker, count)
	}

	parsed, err := url.Parse(matched)
	if err != nil {
		return nil, fmt.Errorf("parsing clone URL: %w", err)
	}
	if parsed.User == nil || parsed.User.Username() == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingUser, redact(parsed))
	}
	if _, hasPassword := parsed.User.Password(); !hasPassword {
		return nil, fmt.Errorf("%w: %s", ErrMissingPassword, redact(parsed))
	}
	return parsed, nil
}

// CloneDirName derives the clone destination directory from the URL's final
// path segment, with any trailing archive-style suffix stripped.
func CloneDirName(u *url.URL) string {
	base := path.Base(u.Path)
	return strings.TrimSuffix(base, ".git")
}

// redact returns the URL with userinfo removed, safe for error messages.
func redact(u *url.URL) string {
	clone := *u
	clone.User = nil
	return clone.String()
}
