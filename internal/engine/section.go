// Package engine infers the logical layout of a CV template document and
// projects candidate data back into that layout.
//
// There is no explicit schema in the input: section banners, field labels,
// and data slots are recovered from text patterns, formatting hints, and
// structural position. Classification is a best-effort heuristic, not a
// parser; components degrade to Unknown rather than failing.
package engine

import (
	"regexp"
	"strings"
)

// SectionType labels the logical role of a recognized element.
type SectionType int

const (
	Unknown SectionType = iota
	FullName
	ContactInfo
	Summary
	Skills
	Tools
	WorkExperience
	Projects
	Education
	Certifications
)

var sectionNames = map[SectionType]string{
	Unknown:        "unknown",
	FullName:       "full_name",
	ContactInfo:    "contact_info",
	Summary:        "summary",
	Skills:         "skills",
	Tools:          "tools",
	WorkExperience: "work_experience",
	Projects:       "projects",
	Education:      "education",
	Certifications: "certifications",
}

func (s SectionType) String() string {
	if n, ok := sectionNames[s]; ok {
		return n
	}
	return "unknown"
}

// sectionSynonyms maps each section type to the banner spellings seen in
// real templates. Order within a list does not matter; matching is fuzzy.
var sectionSynonyms = map[SectionType][]string{
	Summary: {
		"Summary of Qualifications", "Professional Summary", "Profile Summary",
		"Career Snapshot", "Technical Summary", "Professional Profile",
		"Career Summary", "Executive Summary", "Summary",
	},
	WorkExperience: {
		"Work Experience", "Professional Experience", "Employment History",
		"Experience Summary", "Career History", "Work Exp", "Experience",
		"Internships", "Industrial Training",
	},
	Skills: {
		"Skills", "Technical Skills", "Core Competencies", "Key Skills",
		"Skill Set", "Areas of Expertise", "Key Skills and Knowledge",
		"Tech Stack", "Technical Proficiencies", "Core Skills", "IT Skills",
		"Professional Skills", "Software Skills", "Programming Skills",
		"Technical Competencies", "Other Skills",
	},
	Tools: {
		"Tools", "Tools & Technologies", "Design Tools",
		"System Architecture Tools", "Technical Tools",
	},
	Projects: {
		"Projects", "Key Projects", "Selected Projects", "Project Experience",
		"Project Portfolio", "Assignments", "Project Details", "Major Projects",
	},
	Education: {
		"Education", "Academic Background", "Educational Qualifications",
		"Academic Profile", "Academic Qualification", "Academics",
	},
	Certifications: {
		"Certifications", "Professional Certifications",
		"Licenses & Certifications", "Credentials", "Courses", "Awards",
		"Training and Certifications",
	},
}

var normalizeRe = regexp.MustCompile(`[\[\]():]`)

// normalizeText strips brackets, parens, and colons and lowercases.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(normalizeRe.ReplaceAllString(s, "")))
}

// Placeholder token vocabulary.
const (
	PlaceholderBody = "[FILL HERE]"
	PlaceholderName = "[fill Name here]"
)

// containsPlaceholder reports whether text carries any placeholder token.
func containsPlaceholder(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(s, "{{") ||
		strings.Contains(lower, "[fill") ||
		strings.Contains(s, "[NAME]")
}
