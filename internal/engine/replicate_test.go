package engine

import (
	"strings"
	"testing"

	"github.com/jackzampolin/stencil/internal/docx"
)

func markerTexts(doc *docx.Document, prefix string) []string {
	var out []string
	for _, el := range Sequence(doc) {
		if strings.HasPrefix(el.Text(), prefix) {
			out = append(out, el.Text())
		}
	}
	return out
}

func TestReplicateScalesUp(t *testing.T) {
	doc := buildSampleTemplate(t)
	err := Replicate(doc, map[SectionType]int{Projects: 4}, testLogger(t))
	if err != nil {
		t.Fatalf("Replicate: %v", err)
	}

	markers := markerTexts(doc, "Project #")
	if len(markers) != 4 {
		t.Fatalf("markers = %v, want 4", markers)
	}
	want := []string{"Project #1", "Project #2", "Project #3", "Project #4"}
	for i, m := range markers {
		if m != want[i] {
			t.Errorf("marker %d = %q, want %q", i, m, want[i])
		}
	}
}

func TestReplicateClonesWholeBlock(t *testing.T) {
	doc := buildSampleTemplate(t)
	if err := Replicate(doc, map[SectionType]int{Projects: 3}, testLogger(t)); err != nil {
		t.Fatal(err)
	}

	// Each project block carries its field table.
	tables := 0
	for _, block := range doc.Blocks(doc.Body()) {
		if doc.IsTable(block) {
			for _, row := range doc.TableAt(block).Rows() {
				if row.Cells()[0].Text() == "Project Name" {
					tables++
					break
				}
			}
		}
	}
	if tables != 3 {
		t.Errorf("project field tables = %d, want 3", tables)
	}
}

func TestReplicateScalesDown(t *testing.T) {
	doc := buildSampleTemplate(t)
	if err := Replicate(doc, map[SectionType]int{Projects: 1}, testLogger(t)); err != nil {
		t.Fatal(err)
	}

	markers := markerTexts(doc, "Project #")
	if len(markers) != 1 {
		t.Errorf("markers after scale-down = %v, want 1", markers)
	}
}

func TestReplicateExactCountNoChange(t *testing.T) {
	doc := buildSampleTemplate(t)
	before := len(Sequence(doc))
	if err := Replicate(doc, map[SectionType]int{Projects: 2}, testLogger(t)); err != nil {
		t.Fatal(err)
	}
	if after := len(Sequence(doc)); after != before {
		t.Errorf("element count changed %d -> %d with exact record count", before, after)
	}
}

func TestReplicateNeverTouchesBanner(t *testing.T) {
	doc := buildSampleTemplate(t)
	if err := Replicate(doc, map[SectionType]int{Projects: 5}, testLogger(t)); err != nil {
		t.Fatal(err)
	}

	banners := 0
	for _, el := range Sequence(doc) {
		if el.Text() == "Projects" {
			banners++
		}
	}
	if banners != 1 {
		t.Errorf("banner count = %d, want 1", banners)
	}
}

func TestReplicateZeroCountKeepsStructure(t *testing.T) {
	doc := buildSampleTemplate(t)
	if err := Replicate(doc, map[SectionType]int{Projects: 0}, testLogger(t)); err != nil {
		t.Fatal(err)
	}
	if len(markerTexts(doc, "Project #")) != 2 {
		t.Error("zero requested records should leave blocks for the filler to blank")
	}
}

func TestReplicateEmptyBody(t *testing.T) {
	doc := docx.New()
	if err := Replicate(doc, map[SectionType]int{Projects: 2}, testLogger(t)); err != nil {
		t.Error("empty-but-valid body should not error")
	}
}
