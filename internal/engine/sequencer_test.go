package engine

import (
	"testing"

	"github.com/jackzampolin/stencil/internal/docx"
)

// buildSampleTemplate assembles the document most engine tests walk:
// name and contact lines, a summary, a labeled skills table, and two
// numbered project blocks.
func buildSampleTemplate(t *testing.T) *docx.Document {
	t.Helper()
	doc := docx.New()

	name := doc.AddParagraph("")
	name.AddRun("John Example").SetBold().SetSizeHalfPoints(56)
	doc.AddParagraph("john@example.com | 5551234567 | linkedin.com/in/jexample")

	doc.AddHeading("Professional Summary")
	doc.AddParagraph("Seasoned engineer with a decade of delivery experience.")

	doc.AddHeading("Skills")
	skills := doc.AddTable(2, 2)
	skills.Rows()[0].Cells()[0].SetText("Cloud")
	skills.Rows()[0].Cells()[1].SetText("AWS, GCP")
	skills.Rows()[1].Cells()[0].SetText("Languages")
	skills.Rows()[1].Cells()[1].SetText("Go, Python")

	doc.AddHeading("Projects")
	for _, marker := range []string{"Project #1", "Project #2"} {
		doc.AddParagraph(marker)
		tbl := doc.AddTable(3, 2)
		fields := [][2]string{
			{"Project Name", "Inventory Revamp"},
			{"Role", "Lead Developer"},
			{"Duration", "Jan 2020 - Dec 2020"},
		}
		for i, f := range fields {
			tbl.Rows()[i].Cells()[0].SetText(f[0])
			tbl.Rows()[i].Cells()[1].SetText(f[1])
		}
	}

	doc.AddHeading("Education")
	doc.AddParagraph("B.Sc. Computer Science, State University, 2014")

	return doc
}

func elementByText(t *testing.T, els []ContentElement, text string) ContentElement {
	t.Helper()
	for _, el := range els {
		if el.Text() == text {
			return el
		}
	}
	t.Fatalf("no element with text %q", text)
	return ContentElement{}
}

func TestSequenceVisitsEverythingOnce(t *testing.T) {
	doc := buildSampleTemplate(t)
	els := Sequence(doc)

	seen := map[docx.Handle]bool{}
	for _, el := range els {
		h := el.Para.Handle()
		if seen[h] {
			t.Fatalf("element %q visited twice", el.Text())
		}
		seen[h] = true
	}
}

func TestSequenceOrderAndIndices(t *testing.T) {
	doc := buildSampleTemplate(t)
	els := Sequence(doc)

	for i, el := range els {
		if el.Index != i {
			t.Fatalf("element %d has Index %d", i, el.Index)
		}
	}

	name := elementByText(t, els, "John Example")
	summary := elementByText(t, els, "Professional Summary")
	education := elementByText(t, els, "Education")
	if !(name.Index < summary.Index && summary.Index < education.Index) {
		t.Error("sequence does not follow document order")
	}
}

func TestSequenceCellCoordinates(t *testing.T) {
	doc := buildSampleTemplate(t)
	els := Sequence(doc)

	cell := elementByText(t, els, "Go, Python")
	if cell.Kind != KindCell {
		t.Fatalf("table content has kind %v", cell.Kind)
	}
	if cell.Row != 1 || cell.Col != 1 {
		t.Errorf("cell coordinates = (%d,%d), want (1,1)", cell.Row, cell.Col)
	}
	if cell.Table == docx.None {
		t.Error("cell element missing table handle")
	}

	standalone := elementByText(t, els, "Professional Summary")
	if standalone.Kind != KindStandalone {
		t.Error("body paragraph not flagged standalone")
	}
}

func TestSequenceStableAcrossCalls(t *testing.T) {
	doc := buildSampleTemplate(t)
	first := Sequence(doc)
	second := Sequence(doc)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text() != second[i].Text() {
			t.Errorf("element %d differs: %q vs %q", i, first[i].Text(), second[i].Text())
		}
	}
}

func TestSequenceFormattingHints(t *testing.T) {
	doc := buildSampleTemplate(t)
	els := Sequence(doc)

	name := elementByText(t, els, "John Example")
	if !name.Bold() {
		t.Error("bold run not reported")
	}
	if name.MaxSizeHalfPoints() != 56 {
		t.Errorf("MaxSizeHalfPoints = %d, want 56", name.MaxSizeHalfPoints())
	}
}
