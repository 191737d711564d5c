// Package testutil holds helpers shared across package tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"
)

// SilentLogger returns a logger that discards output, for tests that
// only care about behavior.
func SilentLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SampleCandidateJSON is a complete, valid candidate record used by
// fill-path tests.
const SampleCandidateJSON = `{
  "full_name": "Jane Roe",
  "email": "jane.roe@example.com",
  "phone": "5559876543",
  "linkedin": "linkedin.com/in/janeroe",
  "summary": "Backend engineer focused on data-heavy services.",
  "skills": ["Go", "Python", "AWS", "Docker", "PostgreSQL"],
  "tools": ["Git", "Jenkins"],
  "work_experience": [
    {
      "role": "Senior Engineer",
      "company": "Acme Corp",
      "duration": "2019 - 2024",
      "location": "Remote",
      "responsibilities": "Led the billing platform team.\nCut batch latency in half."
    }
  ],
  "projects": [
    {
      "title": "Inventory Revamp",
      "role": "Lead Developer",
      "tech": "Go, PostgreSQL",
      "duration": "2021",
      "description": "Rebuilt stock tracking around event sourcing."
    },
    {
      "title": "Search Tuning",
      "role": "Developer",
      "tech": "Python, Elasticsearch",
      "duration": "2020",
      "description": "Halved null-result queries."
    },
    {
      "title": "Billing Gateway",
      "role": "Developer",
      "tech": "Go",
      "duration": "2019",
      "description": "Unified three payment providers."
    }
  ],
  "education": [
    {
      "degree": "B.Sc. Computer Science",
      "institution": "State University",
      "duration": "2011 - 2015"
    }
  ],
  "certifications": [
    {"title": "AWS Solutions Architect"}
  ]
}`
