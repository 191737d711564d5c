package candidate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/stencil/internal/testutil"
)

func TestParseValidRecord(t *testing.T) {
	rec, err := Parse([]byte(testutil.SampleCandidateJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.FullName != "Jane Roe" {
		t.Errorf("FullName = %q", rec.FullName)
	}
	if len(rec.Projects) != 3 {
		t.Errorf("Projects = %d, want 3", len(rec.Projects))
	}
	if rec.WorkExperience[0].Company != "Acme Corp" {
		t.Errorf("Company = %q", rec.WorkExperience[0].Company)
	}
}

func TestParseMissingName(t *testing.T) {
	_, err := Parse([]byte(`{"summary": "no name"}`))
	if err == nil {
		t.Fatal("expected validation error for missing full_name")
	}
	if !strings.Contains(err.Error(), "full_name") {
		t.Errorf("error does not name the missing field: %v", err)
	}
}

func TestParseWrongTypes(t *testing.T) {
	_, err := Parse([]byte(`{"full_name": "X", "skills": "Go, SQL"}`))
	if err == nil {
		t.Fatal("expected validation error for string skills")
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseMinimalRecord(t *testing.T) {
	rec, err := Parse([]byte(`{"full_name": "Solo Name"}`))
	if err != nil {
		t.Fatalf("minimal record rejected: %v", err)
	}
	if len(rec.Skills) != 0 || len(rec.Projects) != 0 {
		t.Error("zero-value lists expected")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidate.json")
	if err := os.WriteFile(path, []byte(testutil.SampleCandidateJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Email != "jane.roe@example.com" {
		t.Errorf("Email = %q", rec.Email)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
