package requirement

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is the conventional location of the requirement document
// inside a journal repository.
const DefaultPath = ".relgate/requirements.json"

// Load reads and validates a requirement document from a JSON file.
// The wire format is a top-level array of tag requirements.
func Load(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading requirements %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a requirement document from JSON bytes.
func Parse(data []byte) (*Doc, error) {
	var tags []Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("parsing requirements: %w", err)
	}
	doc := &Doc{Tags: tags}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save writes a requirement document as indented JSON, creating the parent
// directory if needed.
func Save(path string, doc *Doc) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc.Tags, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling requirements: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating requirements directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing requirements %s: %w", path, err)
	}
	return nil
}
