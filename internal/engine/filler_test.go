package engine

import (
	"strings"
	"testing"

	"github.com/jackzampolin/stencil/internal/candidate"
	"github.com/jackzampolin/stencil/internal/docx"
	"github.com/jackzampolin/stencil/internal/testutil"
)

func sampleRecord(t *testing.T) *candidate.Record {
	t.Helper()
	rec, err := candidate.Parse([]byte(testutil.SampleCandidateJSON))
	if err != nil {
		t.Fatalf("parsing sample candidate: %v", err)
	}
	return rec
}

// cleanedSample registers the sample template end to end: extract,
// clean, ready to fill.
func cleanedSample(t *testing.T) *docx.Document {
	t.Helper()
	doc := buildSampleTemplate(t)
	schema := Extract(doc, "sample", testLogger(t))
	NewCleaner(doc, schema, testLogger(t)).Clean()
	return doc
}

func allText(doc *docx.Document) string {
	var parts []string
	for _, el := range Sequence(doc) {
		if t := el.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func TestFillLeavesNoPlaceholders(t *testing.T) {
	doc := cleanedSample(t)
	rec := sampleRecord(t)

	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	text := allText(doc)
	if strings.Contains(strings.ToLower(text), "[fill") {
		t.Errorf("unresolved placeholder in output:\n%s", text)
	}
}

func TestFillSubstitutesName(t *testing.T) {
	doc := cleanedSample(t)
	rec := sampleRecord(t)
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	text := allText(doc)
	if !strings.Contains(text, "Jane Roe") {
		t.Error("candidate name missing from output")
	}
	if strings.Contains(text, "John Example") {
		t.Error("template example name survived")
	}
}

func TestFillScalesProjectBlocks(t *testing.T) {
	doc := cleanedSample(t)
	rec := sampleRecord(t) // three projects, template has two blocks

	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	text := allText(doc)
	for _, title := range []string{"Inventory Revamp", "Search Tuning", "Billing Gateway"} {
		if !strings.Contains(text, title) {
			t.Errorf("project %q missing", title)
		}
	}
	if !strings.Contains(text, "Project #3") {
		t.Error("replicated block not renumbered")
	}
}

func TestFillAssignsRecordFieldsByLabel(t *testing.T) {
	doc := cleanedSample(t)
	rec := sampleRecord(t)
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	// First project block: title, role, duration in label order.
	var gotRole bool
	for _, el := range Sequence(doc) {
		if el.Text() == "Lead Developer" && el.Kind == KindCell {
			gotRole = true
		}
	}
	if !gotRole {
		t.Error("role value not placed in its labeled cell")
	}
}

func TestFillSkillCategories(t *testing.T) {
	doc := cleanedSample(t)
	rec := sampleRecord(t)
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	els := Sequence(doc)
	cloud := elementByText(t, els, "AWS")
	if cloud.Kind != KindCell {
		t.Error("cloud skills not in the skills table")
	}
	langs := elementByText(t, els, "Go, Python")
	if langs.Kind != KindCell {
		t.Error("language skills not in the skills table")
	}
}

func TestFillSummaryScalar(t *testing.T) {
	doc := cleanedSample(t)
	rec := sampleRecord(t)
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(allText(doc), rec.Summary) {
		t.Error("summary text missing")
	}
}

func TestFillWholeRecordInjection(t *testing.T) {
	doc := cleanedSample(t)
	rec := sampleRecord(t)
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	text := allText(doc)
	if !strings.Contains(text, "B.Sc. Computer Science from State University (2011 - 2015)") {
		t.Error("education record not rendered as a block line")
	}
}

func TestFillEmptyListsRemoveTargets(t *testing.T) {
	doc := docx.New()
	doc.AddHeading("Certifications")
	doc.AddParagraph("[FILL HERE]")

	schema := Extract(doc, "t", testLogger(t))
	NewCleaner(doc, schema, testLogger(t)).Clean()

	rec := &candidate.Record{FullName: "Jane Roe"}
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	text := allText(doc)
	if strings.Contains(text, PlaceholderBody) {
		t.Error("empty section left a visible placeholder")
	}
}

func TestFillUnifiedSkillsWithoutToolsBox(t *testing.T) {
	doc := docx.New()
	doc.AddHeading("Skills")
	doc.AddParagraph("[FILL HERE]")

	schema := Extract(doc, "t", testLogger(t))
	NewCleaner(doc, schema, testLogger(t)).Clean()

	rec := &candidate.Record{
		FullName: "Jane Roe",
		Skills:   []string{"Go"},
		Tools:    []string{"Git"},
	}
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	text := allText(doc)
	if !strings.Contains(text, "Go") || !strings.Contains(text, "Git") {
		t.Errorf("merged skill list incomplete: %q", text)
	}
}

func TestFillTwoSkillBoxesBothReceiveMergedList(t *testing.T) {
	doc := docx.New()
	doc.AddParagraph("Jane Candidate")
	doc.AddHeading("Key Skills")
	doc.AddParagraph("[FILL HERE]")
	doc.AddHeading("Other Skills")
	doc.AddParagraph("[FILL HERE]")

	schema := Extract(doc, "t", testLogger(t))
	NewCleaner(doc, schema, testLogger(t)).Clean()

	rec := &candidate.Record{
		FullName: "Jane Roe",
		Skills:   []string{"Go"},
		Tools:    []string{"Git"},
	}
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	var texts []string
	for _, el := range Sequence(doc) {
		texts = append(texts, el.Text())
	}
	for _, header := range []string{"Key Skills", "Other Skills"} {
		line := texts[indexOf(texts, header)+1]
		if line != "Go, Git" {
			t.Errorf("box under %q holds %q, want the merged list", header, line)
		}
	}
}

func TestFillSplitSkillsWithToolsBox(t *testing.T) {
	doc := docx.New()
	doc.AddHeading("Skills")
	doc.AddParagraph("[FILL HERE]")
	doc.AddHeading("Tools")
	doc.AddParagraph("[FILL HERE]")

	schema := Extract(doc, "t", testLogger(t))
	NewCleaner(doc, schema, testLogger(t)).Clean()

	rec := &candidate.Record{
		FullName: "Jane Roe",
		Skills:   []string{"Go"},
		Tools:    []string{"Git"},
	}
	if err := NewFiller(testLogger(t)).Fill(doc, rec); err != nil {
		t.Fatal(err)
	}

	els := Sequence(doc)
	var texts []string
	for _, el := range els {
		texts = append(texts, el.Text())
	}
	joined := strings.Join(texts, "\n")
	if !strings.Contains(joined, "Go") || !strings.Contains(joined, "Git") {
		t.Errorf("split mode lost entries: %q", joined)
	}
	// Tools stay out of the skills box in split mode.
	skillsLine := texts[indexOf(texts, "Skills")+1]
	if strings.Contains(skillsLine, "Git") {
		t.Errorf("tools leaked into skills box: %q", skillsLine)
	}
}

func indexOf(ss []string, want string) int {
	for i, s := range ss {
		if s == want {
			return i
		}
	}
	return -1
}

func TestFillNilRecord(t *testing.T) {
	doc := cleanedSample(t)
	if err := NewFiller(testLogger(t)).Fill(doc, nil); err == nil {
		t.Error("expected error for nil record")
	}
}
