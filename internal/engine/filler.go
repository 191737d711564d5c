package engine

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jackzampolin/stencil/internal/candidate"
	"github.com/jackzampolin/stencil/internal/docx"
)

// anchorThreshold is the minimum classifier confidence for a live anchor
// during filling.
const anchorThreshold = 0.7

var (
	hashCaptureRe = regexp.MustCompile(`#(\d+)`)
	shortMarkerRe = regexp.MustCompile(`^(project|assignment|task)\s*#?\d*$`)
)

// skillCategories maps a category label keyword to the skill-name
// keywords that belong to it.
var skillCategories = map[string][]string{
	"cloud":    {"aws", "azure", "gcp", "lambda", "ec2", "s3", "cloud"},
	"devops":   {"docker", "kubernetes", "jenkins", "terraform", "ansible", "git", "github", "gitlab"},
	"database": {"sql", "mysql", "postgres", "mongodb", "redis", "oracle", "elasticsearch"},
	"os":       {"linux", "windows", "unix", "ubuntu"},
	"web":      {"html", "css", "javascript", "react", "angular", "vue", "node", "express"},
	"language": {"python", "java", "php", "c#", "ruby", "typescript", "go"},
	"design":   {"figma", "photoshop", "illustrator", "sketch", "xd", "ui", "ux"},
}

// FillState is the per-section cursor threaded through one fill call:
// current record, current field within the record, and the identity of
// the block the previous target lived in. It is scoped to the call and
// discarded afterwards.
type FillState struct {
	Record    int
	Field     int
	LastBlock docx.Handle
}

// Filler injects candidate data into a cleaned template, record by
// record, field by field.
//
// Record-advance signals can overlap; the filler applies a fixed
// precedence per target: a record-marker crossing wins, then a change of
// owning table identity, then a repeated primary label. Once one signal
// fires for a target the rest are ignored.
type Filler struct {
	log *slog.Logger
}

// NewFiller returns a filler logging through log.
func NewFiller(log *slog.Logger) *Filler {
	if log == nil {
		log = slog.Default()
	}
	return &Filler{log: log}
}

type anchor struct {
	start int
	stype SectionType
}

type fillTarget struct {
	el ContentElement
}

// Fill performs the complete mapping pass over doc. The document is
// mutated in place; the caller persists it.
func (f *Filler) Fill(doc *docx.Document, rec *candidate.Record) error {
	if rec == nil {
		return fmt.Errorf("nil candidate record")
	}

	f.substituteTokens(doc, rec)

	counts := map[SectionType]int{
		Projects:       len(rec.Projects),
		WorkExperience: len(rec.WorkExperience),
		Education:      len(rec.Education),
	}
	if err := Replicate(doc, counts, f.log); err != nil {
		// Replication failure is survivable: fill proceeds on the
		// unscaled structure.
		f.log.Error("dynamic replication failed, continuing unscaled", "err", err)
	}

	// Anchors must be detected live: replication shifted positions, so
	// the persisted schema's coordinates no longer hold.
	els := Sequence(doc)
	anchors := detectAnchors(els)
	f.log.Info("detected anchors", "count", len(anchors))

	hasTools := false
	for _, a := range anchors {
		if a.stype == Tools {
			hasTools = true
		}
	}

	states := map[SectionType]*FillState{}
	processed := map[int]bool{}

	for i, a := range anchors {
		end := len(els)
		if i+1 < len(anchors) {
			end = anchors[i+1].start
		}

		var targets []fillTarget
		for j := a.start + 1; j < end; j++ {
			if isFillTarget(els[j].Text()) {
				targets = append(targets, fillTarget{el: els[j]})
			}
		}
		if len(targets) == 0 {
			continue
		}

		records := resolveData(a.stype, rec, hasTools)
		if len(records) == 0 {
			for _, t := range targets {
				removeTarget(t.el)
			}
			continue
		}

		st := states[a.stype]
		if st == nil {
			st = &FillState{LastBlock: docx.None}
			states[a.stype] = st
		}
		// Skill allocation is scoped per anchor: every skills box starts
		// from the full list, so two generic boxes both receive it.
		allocated := map[string]bool{}
		f.fillAnchor(doc, els, a, targets, records, st, allocated, processed)
	}
	return nil
}

// substituteTokens performs the global inline replacements: name, email,
// phone, and link tokens anywhere in the document, case-insensitive,
// preserving surrounding text.
func (f *Filler) substituteTokens(doc *docx.Document, rec *candidate.Record) {
	name := rec.FullName
	if name == "" {
		name = "Applicant"
	}
	tokens := []struct {
		re    *regexp.Regexp
		value string
	}{
		{regexp.MustCompile(`(?i)` + regexp.QuoteMeta(PlaceholderName)), name},
		{regexp.MustCompile(`(?i)` + regexp.QuoteMeta("[NAME]")), name},
		{regexp.MustCompile(`(?i)\{\{name\}\}`), name},
		{regexp.MustCompile(`(?i)\{\{email\}\}`), rec.Email},
		{regexp.MustCompile(`(?i)\{\{phone\}\}`), rec.Phone},
		{regexp.MustCompile(`(?i)\{\{linkedin\}\}`), rec.Linkedin},
	}

	for _, el := range Sequence(doc) {
		text := el.Para.Text()
		replaced := text
		for _, t := range tokens {
			replaced = t.re.ReplaceAllLiteralString(replaced, t.value)
		}
		if replaced != text {
			el.Para.SetText(replaced)
		}
	}
}

func detectAnchors(els []ContentElement) []anchor {
	var anchors []anchor
	for _, el := range els {
		cls := Classify(el)
		if cls.Type == Unknown || cls.Confidence < anchorThreshold {
			continue
		}
		topLevel := !cls.RecordMarker
		if topLevel || len(anchors) == 0 || anchors[len(anchors)-1].stype != cls.Type {
			anchors = append(anchors, anchor{start: el.Index, stype: cls.Type})
		}
	}
	return anchors
}

func isFillTarget(text string) bool {
	return strings.Contains(text, PlaceholderBody) ||
		strings.Contains(strings.ToLower(text), "[fill")
}

// removeTarget drops an exhausted placeholder. Standalone paragraphs are
// detached outright; cell paragraphs are cleared because a table cell
// must keep at least one paragraph.
func removeTarget(el ContentElement) {
	if el.Kind == KindStandalone {
		el.Para.Remove()
		return
	}
	el.Para.Clear()
}

func (f *Filler) fillAnchor(
	doc *docx.Document,
	els []ContentElement,
	a anchor,
	targets []fillTarget,
	records []fillRecord,
	st *FillState,
	allocated map[string]bool,
	processed map[int]bool,
) {
	skillSection := a.stype == Skills || a.stype == Tools
	sequential := a.stype == WorkExperience || a.stype == Projects

	hasCellTargets := false
	for _, t := range targets {
		if t.el.Kind == KindCell {
			hasCellTargets = true
		}
	}

	for ti, t := range targets {
		el := t.el
		advanced := false

		if sequential {
			lookStart := a.start
			if ti > 0 {
				lookStart = targets[ti-1].el.Index
			}
			advanced = f.crossMarkers(els, lookStart, el.Index, st)
		}

		label := resolveLabel(doc, els, a.start, el)

		if !skillSection && !advanced && st.Field > 0 {
			newBlock := el.Table != docx.None && st.LastBlock != docx.None && el.Table != st.LastBlock
			if newBlock || isPrimaryLabelRepeat(label) {
				st.Record++
				st.Field = 0
				f.log.Debug("advancing record",
					"section", a.stype.String(), "record", st.Record, "label", label)
			}
		}
		st.LastBlock = el.Table

		var value string
		injected := false

		if skillSection {
			value, injected = f.fillSkillTarget(el, label, records, targets, ti, a.start, hasCellTargets, allocated, processed)
		} else {
			if st.Record >= len(records) {
				removeTarget(el)
				continue
			}
			r := records[st.Record]
			if r.scalar != "" && len(records) == 1 {
				value = r.scalar
			} else if label != "" {
				value = r.field(label)
			}

			if value == "" && st.Field == 0 && label == "" {
				if !sequential || !hasCellTargets {
					if !processed[a.start] {
						injectWholeRecords(el, records)
						processed[a.start] = true
						injected = true
					}
				}
			}
		}

		if injected {
			st.Field++
			continue
		}

		if value != "" {
			f.log.Debug("injecting value",
				"section", a.stype.String(), "record", st.Record,
				"label", label, "chars", len(value))
			injectValue(el, value)
			st.Field++
			if !sequential && !skillSection {
				st.Record++
				st.Field = 0
			}
			continue
		}

		removeTarget(el)
	}
}

// crossMarkers scans the elements between the previous target and the
// current one for record-marker lines and moves the cursor accordingly.
// Returns true when a marker fired, which suppresses the weaker
// record-advance signals for this target.
func (f *Filler) crossMarkers(els []ContentElement, from, to int, st *FillState) bool {
	fired := false
	for idx := from + 1; idx < to; idx++ {
		text := els[idx].Text()
		h := els[idx].Para.Handle()
		if m := hashCaptureRe.FindStringSubmatch(text); m != nil {
			if st.LastBlock != h {
				num := 0
				fmt.Sscanf(m[1], "%d", &num)
				st.Record = num - 1
				st.Field = 0
				st.LastBlock = h
				fired = true
				f.log.Debug("record marker crossed", "marker", text, "record", st.Record)
			}
		} else if strings.Contains(text, "#") ||
			(len(text) < 30 && shortMarkerRe.MatchString(strings.ToLower(text))) {
			if st.LastBlock != h {
				st.Record++
				st.Field = 0
				st.LastBlock = h
				fired = true
				f.log.Debug("record marker crossed", "marker", text, "record", st.Record)
			}
		}
	}
	return fired
}

// resolveLabel finds the field label governing a target, in order:
// the preceding short or colon-terminated line, the first-column text of
// the target's own table row, or an inline "Label: [placeholder]" form.
func resolveLabel(doc *docx.Document, els []ContentElement, anchorStart int, el ContentElement) string {
	if el.Index > anchorStart+1 {
		prev := els[el.Index-1]
		prevText := prev.Text()
		if prevText != "" && (strings.HasSuffix(prevText, ":") || len(prevText) < 30) {
			if label := cleanLabel(prevText); label != "" && !isFillTarget(prevText) {
				return label
			}
		}
	}

	if el.Kind == KindCell && el.Table != docx.None && el.Col > 0 {
		rows := doc.TableAt(el.Table).Rows()
		if el.Row >= 0 && el.Row < len(rows) {
			cells := rows[el.Row].Cells()
			if len(cells) > 0 {
				if label := cleanLabel(cells[0].Text()); label != "" {
					return label
				}
			}
		}
	}

	text := el.Para.Text()
	colon := strings.Index(text, ":")
	bracket := strings.Index(text, "[")
	if colon >= 0 && bracket >= 0 && colon < bracket {
		return cleanLabel(text[:colon])
	}
	return ""
}

func cleanLabel(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(strings.ToLower(s)), ":"))
}

// isPrimaryLabelRepeat reports whether a label names a record's primary
// identifying field; seeing it again means a new record began.
func isPrimaryLabelRepeat(label string) bool {
	if label == "" {
		return false
	}
	for _, k := range []string{"title", "project name", "company", "employer"} {
		if strings.Contains(label, k) {
			return true
		}
	}
	return strings.Contains(label, "project") &&
		(strings.Contains(label, "title") || strings.Contains(label, "name"))
}

// fillSkillTarget handles Skills/Tools targets: a category-labeled slot
// receives only matching unallocated skills; a generic slot receives the
// full remaining list once per section instance.
func (f *Filler) fillSkillTarget(
	el ContentElement,
	label string,
	records []fillRecord,
	targets []fillTarget,
	ti int,
	anchorStart int,
	hasCellTargets bool,
	allocated map[string]bool,
	processed map[int]bool,
) (string, bool) {
	if label != "" {
		if keywords := categoryFor(label); keywords != nil {
			var matches []string
			for _, r := range records {
				skill := r.scalar
				if allocated[skill] {
					continue
				}
				low := strings.ToLower(skill)
				for _, k := range keywords {
					if strings.Contains(low, k) {
						matches = append(matches, skill)
						allocated[skill] = true
						break
					}
				}
			}
			if len(matches) > 0 {
				return strings.Join(matches, ", "), false
			}
			return "", false
		}
	}

	var remaining []string
	for _, r := range records {
		if !allocated[r.scalar] {
			remaining = append(remaining, r.scalar)
		}
	}
	if len(remaining) == 0 || processed[anchorStart] {
		return "", false
	}
	if el.Kind == KindCell || !hasCellTargets || ti == len(targets)-1 {
		for _, s := range remaining {
			allocated[s] = true
		}
		processed[anchorStart] = true
		return strings.Join(remaining, ", "), false
	}
	return "", false
}

func categoryFor(label string) []string {
	for name, keywords := range skillCategories {
		if strings.Contains(label, name) {
			return keywords
		}
	}
	return nil
}

// injectValue writes a value into a target, keeping an inline label when
// the target carries one ("Duration: [FILL HERE]" stays labeled).
func injectValue(el ContentElement, value string) {
	text := el.Para.Text()
	if strings.Contains(text, ":") && strings.Contains(text, "[") &&
		strings.Index(text, ":") < strings.Index(text, "[") {
		labelPart := text[:strings.Index(text, "[")]
		el.Para.SetText(labelPart + value)
		return
	}
	el.Para.SetText(value)
}

// injectWholeRecords renders every record as a formatted multi-line
// block in place of the target paragraph.
func injectWholeRecords(el ContentElement, records []fillRecord) {
	for _, rec := range records {
		for _, line := range rec.blockLines() {
			p := el.Para.InsertParagraphBefore("")
			r := p.AddRun(line.text)
			if line.bold {
				r.SetBold()
			}
		}
	}
	removeTarget(el)
}
