package engine

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jackzampolin/stencil/internal/docx"
)

// protectedLabels are field labels a cleaned template must keep so the
// filler can resolve targets against them later.
var protectedLabels = map[string]bool{
	"client": true, "role": true, "duration": true, "company": true,
	"location": true, "responsibilities": true, "description": true,
	"details": true, "technologies": true, "tech": true, "stack": true,
	"environment": true, "institution": true, "degree": true,
	"qualification": true, "project": true, "title": true, "summary": true,
	"tools": true, "category": true, "skills": true, "experience": true,
	"education": true, "overview": true, "project name": true,
	"project title": true, "company name": true, "tech stack": true,
	"technology stack": true,
}

var contactLineRe = regexp.MustCompile(`\+?\d[\d\-\s]{7,}`)

type cleanState int

const (
	stateNoSection cleanState = iota
	stateActive
	stateGhost
)

// Cleaner strips a captured template's example content down to one
// placeholder per recognized section. It runs a small state machine over
// each paragraph sequence: a first-seen header claims its section and
// opens a slot; a duplicate header instance enters a ghost state that
// deletes everything until the next claimed header; unrecognized top
// matter is dropped.
type Cleaner struct {
	doc     *docx.Document
	schema  *TemplateSchema
	log     *slog.Logger
	claimed map[string]bool
	seen    map[docx.Handle]bool
}

// NewCleaner builds a cleaner for one document and its extracted schema.
func NewCleaner(doc *docx.Document, schema *TemplateSchema, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	return &Cleaner{
		doc:     doc,
		schema:  schema,
		log:     log,
		claimed: map[string]bool{},
		seen:    map[docx.Handle]bool{},
	}
}

// Clean processes the document body and, recursively, every table cell
// including nested tables. Cell identity is tracked so no cell is
// processed twice.
func (c *Cleaner) Clean() {
	var bodyParas []docx.Paragraph
	for _, block := range c.doc.Blocks(c.doc.Body()) {
		if c.doc.IsParagraph(block) {
			bodyParas = append(bodyParas, c.doc.ParagraphAt(block))
		}
	}
	c.processSequence(bodyParas, false)

	for _, block := range c.doc.Blocks(c.doc.Body()) {
		if c.doc.IsTable(block) {
			c.cleanTable(c.doc.TableAt(block))
		}
	}
}

func (c *Cleaner) cleanTable(t docx.Table) {
	for _, row := range t.Rows() {
		cells := row.Cells()
		for col, cell := range cells {
			if c.seen[cell.Handle()] {
				continue
			}
			c.seen[cell.Handle()] = true
			// First column of a multi-column row is the label column;
			// the filler resolves values against it later.
			if col > 0 || len(cells) == 1 {
				c.processSequence(cell.Paragraphs(), true)
			}
			for _, nested := range cell.Tables() {
				c.cleanTable(nested)
			}
		}
	}
}

// matchSection finds the schema section whose header text the paragraph
// matches. Text shaped like a record marker is compared against marker
// sections first, so "Project #2" resolves to the "Project #1" delimiter
// rather than the already-claimed "Projects" banner it also resembles.
// The name banner tolerates a lower similarity because names in
// templates vary more than section banners do.
func (c *Cleaner) matchSection(text string) *TemplateSection {
	norm := normalizeText(text)
	if norm == "" {
		return nil
	}
	isMarker := recordMarkerRe.MatchString(strings.ToLower(text))
	if sect := c.matchAgainst(norm, isMarker); sect != nil {
		return sect
	}
	return c.matchAgainst(norm, !isMarker)
}

func (c *Cleaner) matchAgainst(norm string, wantMarker bool) *TemplateSection {
	for i := range c.schema.Sections {
		sect := &c.schema.Sections[i]
		if sect.RecordMarker != wantMarker {
			continue
		}
		threshold := 80
		if sect.Type == FullName {
			threshold = 65
		}
		if ratio(norm, normalizeText(sect.HeaderText)) > threshold {
			return sect
		}
	}
	return nil
}

func claimID(s *TemplateSection) string {
	return s.Type.String() + "_" + normalizeText(s.HeaderText)
}

func (c *Cleaner) processSequence(paras []docx.Paragraph, inCell bool) {
	state := stateNoSection
	hasSlot := false
	var toDelete []docx.Paragraph

	for _, p := range paras {
		text := strings.TrimSpace(p.Text())

		if sect := c.matchSection(text); sect != nil {
			if sect.RecordMarker {
				// "Project #N" delimiters repeat legitimately; each one
				// opens a fresh slot for its own block.
				state = stateActive
				hasSlot = false
				continue
			}

			id := claimID(sect)

			if sect.Type == ContactInfo {
				// Contact lines are re-filled from token substitution,
				// not placeholders.
				p.Clear()
				continue
			}

			if sect.Type == FullName {
				if !c.claimed[id] {
					c.claimed[id] = true
					p.SetText(PlaceholderName)
					state = stateNoSection
				} else {
					toDelete = append(toDelete, p)
				}
				continue
			}

			if !c.claimed[id] {
				c.claimed[id] = true
				state = stateActive
				hasSlot = false
			} else {
				// Copy-paste duplicate of an already-claimed header.
				toDelete = append(toDelete, p)
				state = stateGhost
			}
			continue
		}

		if p.Protected() {
			// Extraction marked this line a header even though its text no
			// longer matches the stored copy. Keep it and treat it as a
			// section boundary.
			state = stateActive
			hasSlot = false
			continue
		}

		if state == stateGhost {
			toDelete = append(toDelete, p)
			continue
		}

		if containsPlaceholder(text) {
			if state == stateActive {
				hasSlot = true
			}
			continue
		}

		if c.isFieldLabel(p, text) {
			continue
		}

		if text == "" {
			continue
		}

		switch state {
		case stateActive:
			if !hasSlot {
				p.SetText(PlaceholderBody)
				hasSlot = true
			} else {
				toDelete = append(toDelete, p)
			}
		case stateNoSection:
			if inCell {
				// Cell content outside any section is a data slot for the
				// enclosing blueprint block.
				if !hasSlot {
					p.SetText(PlaceholderBody)
					hasSlot = true
				} else {
					toDelete = append(toDelete, p)
				}
				continue
			}
			c.cleanTopMatter(p, text, &toDelete)
		}
	}

	for _, p := range toDelete {
		p.Remove()
	}
}

// cleanTopMatter handles body text above or between recognized sections:
// a name-like line becomes the name placeholder, contact lines are
// blanked, anything else is dropped.
func (c *Cleaner) cleanTopMatter(p docx.Paragraph, text string, toDelete *[]docx.Paragraph) {
	nameID := FullName.String() + "_"
	if looksLikeName(text) && !c.claimedPrefix(nameID) {
		c.claimed[nameID] = true
		p.SetText(PlaceholderName)
		return
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "@") || strings.Contains(lower, "linkedin") ||
		strings.Contains(lower, "http") || contactLineRe.MatchString(text) {
		p.Clear()
		return
	}
	*toDelete = append(*toDelete, p)
}

func (c *Cleaner) claimedPrefix(prefix string) bool {
	for id := range c.claimed {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

func looksLikeName(text string) bool {
	var words []string
	for _, w := range strings.Fields(text) {
		if isAlphaWord(w) {
			words = append(words, w)
		}
	}
	if len(words) < 2 || len(words) > 5 {
		return false
	}
	if text == strings.ToUpper(text) {
		return true
	}
	for _, w := range words {
		r := rune(w[0])
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isAlphaWord(w string) bool {
	for _, r := range w {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return len(w) > 0
}

// isFieldLabel reports whether the paragraph is a label the cleaned
// template keeps: a short colon-terminated line, an almost-empty
// "Label: x" line, or the label column of a table row.
func (c *Cleaner) isFieldLabel(p docx.Paragraph, text string) bool {
	words := len(strings.Fields(text))
	if strings.HasSuffix(text, ":") && words < 6 {
		return true
	}
	if idx := strings.Index(text, ":"); idx >= 0 && words < 5 {
		if len(strings.TrimSpace(text[idx+1:])) < 3 {
			return true
		}
	}
	norm := strings.TrimSpace(strings.TrimSuffix(strings.ToLower(text), ":"))
	if protectedLabels[norm] && words < 4 {
		return true
	}
	return false
}
