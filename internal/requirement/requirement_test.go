package requirement

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sampleDoc returns a small valid two-tag document.
func sampleDoc() *Doc {
	return &Doc{
		Tags: []Tag{
			{
				Name: "v1.0",
				Files: []File{
					{
						Path: "journal/week-01.md",
						Checks: []Check{
							{Regex: `(?i)# week 1`, Message: "week 1 heading missing"},
							{Regex: `reflection`, Message: "reflection section missing"},
						},
					},
				},
			},
			{
				Name: "v2.0",
				Files: []File{
					{
						Path:   "journal/week-02.md",
						Checks: []Check{{Regex: `# Week 2`, Message: "week 2 heading missing"}},
					},
				},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Doc)
		wantErr string
	}{
		{
			name:   "valid document",
			mutate: func(*Doc) {},
		},
		{
			name:    "no tags",
			mutate:  func(d *Doc) { d.Tags = nil },
			wantErr: "no tags",
		},
		{
			name:    "empty tag name",
			mutate:  func(d *Doc) { d.Tags[0].Name = "  " },
			wantErr: "empty name",
		},
		{
			name:    "empty file path",
			mutate:  func(d *Doc) { d.Tags[1].Files[0].Path = "" },
			wantErr: "empty path",
		},
		{
			name:    "absolute file path",
			mutate:  func(d *Doc) { d.Tags[0].Files[0].Path = "/etc/passwd" },
			wantErr: "relative to the repository root",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			doc := sampleDoc()
			testCase.mutate(doc)

			err := doc.Validate()
			if testCase.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("Validate() error = %T, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), testCase.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, testCase.wantErr)
			}
		})
	}
}

func TestParse_WireFormat(t *testing.T) {
	data := []byte(`[
  {
    "tagName": "v1.0",
    "fileRequirements": [
      {
        "filePathname": "journal/week-01.md",
        "regexMessages": [
          {"regex": "# Week 1", "message": "week 1 heading missing"}
        ]
      }
    ]
  }
]`)

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Tags) != 1 {
		t.Fatalf("len(Tags) = %d, want 1", len(doc.Tags))
	}
	tag := doc.Tags[0]
	if tag.Name != "v1.0" {
		t.Errorf("Name = %q, want %q", tag.Name, "v1.0")
	}
	if len(tag.Files) != 1 || tag.Files[0].Path != "journal/week-01.md" {
		t.Fatalf("Files = %+v, want one file journal/week-01.md", tag.Files)
	}
	check := tag.Files[0].Checks[0]
	if check.Regex != "# Week 1" || check.Message != "week 1 heading missing" {
		t.Errorf("Check = %+v", check)
	}
}

func TestParse_RejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"not": "an array"}`)); err == nil {
		t.Error("Parse() error = nil for non-array document")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".relgate", "requirements.json")
	want := sampleDoc()

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(got.Tags) != len(want.Tags) {
		t.Fatalf("len(Tags) = %d, want %d", len(got.Tags), len(want.Tags))
	}
	// Order must survive the round trip; it drives verification order.
	for i := range want.Tags {
		if got.Tags[i].Name != want.Tags[i].Name {
			t.Errorf("Tags[%d].Name = %q, want %q", i, got.Tags[i].Name, want.Tags[i].Name)
		}
	}
	if got.Tags[0].Files[0].Checks[1].Message != "reflection section missing" {
		t.Errorf("nested check did not survive round trip: %+v", got.Tags[0].Files[0].Checks)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Load() error = nil for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist in chain", err)
	}
}

func TestStats(t *testing.T) {
	stats := sampleDoc().Stats()
	if stats.Tags != 2 || stats.Files != 2 || stats.Checks != 3 {
		t.Errorf("Stats() = %+v, want {Tags:2 Files:2 Checks:3}", stats)
	}
}
