package engine

import (
	"fmt"
	"strings"

	"github.com/jackzampolin/stencil/internal/candidate"
)

// fillRecord is the filler's uniform view over all per-section data:
// scalar entries (summary text, individual skills, certification titles)
// and structured records with labeled fields.
type fillRecord struct {
	scalar string
	exp    *candidate.Experience
	proj   *candidate.Project
	edu    *candidate.Education
}

type blockLine struct {
	text string
	bold bool
}

// resolveData produces the ordered records a section anchor consumes.
// Skills and Tools interact: a template with both anchors splits them,
// a template with only a Skills box receives the merged list.
func resolveData(stype SectionType, rec *candidate.Record, hasToolsAnchor bool) []fillRecord {
	switch stype {
	case Summary:
		if rec.Summary == "" {
			return nil
		}
		return []fillRecord{{scalar: rec.Summary}}
	case Skills:
		if hasToolsAnchor {
			return scalarRecords(rec.Skills)
		}
		return scalarRecords(mergeUnique(rec.Skills, rec.Tools))
	case Tools:
		return scalarRecords(rec.Tools)
	case WorkExperience:
		out := make([]fillRecord, 0, len(rec.WorkExperience))
		for i := range rec.WorkExperience {
			out = append(out, fillRecord{exp: &rec.WorkExperience[i]})
		}
		return out
	case Projects:
		out := make([]fillRecord, 0, len(rec.Projects))
		for i := range rec.Projects {
			out = append(out, fillRecord{proj: &rec.Projects[i]})
		}
		return out
	case Education:
		out := make([]fillRecord, 0, len(rec.Education))
		for i := range rec.Education {
			out = append(out, fillRecord{edu: &rec.Education[i]})
		}
		return out
	case Certifications:
		out := make([]fillRecord, 0, len(rec.Certifications))
		for _, c := range rec.Certifications {
			if c.Title != "" {
				out = append(out, fillRecord{scalar: c.Title})
			}
		}
		return out
	}
	return nil
}

func scalarRecords(values []string) []fillRecord {
	out := make([]fillRecord, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, fillRecord{scalar: v})
		}
	}
	return out
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range append(append([]string{}, a...), b...) {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// field resolves a label to the record value it names. Unmapped or
// empty fields return "", which the filler treats as no data.
func (r fillRecord) field(label string) string {
	switch {
	case containsAny(label, "role", "designation", "position"):
		if r.exp != nil {
			return r.exp.Role
		}
		if r.proj != nil {
			return r.proj.Role
		}
	case containsAny(label, "duration", "period", "date", "year"):
		if r.exp != nil {
			return r.exp.Duration
		}
		if r.proj != nil {
			return r.proj.Duration
		}
		if r.edu != nil {
			return r.edu.Duration
		}
	case containsAny(label, "client", "company", "employer", "organization"):
		if r.exp != nil {
			return r.exp.Company
		}
		if r.proj != nil {
			return r.proj.Title
		}
	case containsAny(label, "title", "project", "name"):
		if r.proj != nil {
			return r.proj.Title
		}
		if r.exp != nil {
			return r.exp.Company
		}
	case containsAny(label, "tech", "stack", "env", "tool", "technolog"):
		if r.proj != nil {
			return r.proj.Tech
		}
	case containsAny(label, "resp", "desc", "detail", "overview", "task"):
		if r.exp != nil {
			return r.exp.Responsibilities
		}
		if r.proj != nil {
			return r.proj.Description
		}
	case containsAny(label, "location", "place"):
		if r.exp != nil {
			return r.exp.Location
		}
	case containsAny(label, "inst", "univ", "school", "college"):
		if r.edu != nil {
			return r.edu.Institution
		}
	case containsAny(label, "deg", "qual", "course"):
		if r.edu != nil {
			return r.edu.Degree
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// blockLines renders the record as a formatted multi-line block for
// whole-record injection.
func (r fillRecord) blockLines() []blockLine {
	switch {
	case r.exp != nil:
		head := fmt.Sprintf("• %s at %s (%s)", r.exp.Role, r.exp.Company, r.exp.Duration)
		lines := []blockLine{{text: head, bold: true}}
		for _, l := range strings.Split(r.exp.Responsibilities, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, blockLine{text: l})
			}
		}
		return lines
	case r.proj != nil:
		lines := []blockLine{{text: fmt.Sprintf("• %s (%s)", r.proj.Title, r.proj.Duration), bold: true}}
		if r.proj.Role != "" {
			lines = append(lines, blockLine{text: "Role: " + r.proj.Role})
		}
		if r.proj.Tech != "" {
			lines = append(lines, blockLine{text: "Tech Stack: " + r.proj.Tech})
		}
		if r.proj.Description != "" {
			lines = append(lines, blockLine{text: r.proj.Description})
		}
		return lines
	case r.edu != nil:
		return []blockLine{{
			text: fmt.Sprintf("• %s from %s (%s)", r.edu.Degree, r.edu.Institution, r.edu.Duration),
			bold: true,
		}}
	default:
		return []blockLine{{text: "• " + r.scalar}}
	}
}
