package engine

import (
	"testing"

	"github.com/jackzampolin/stencil/internal/docx"
)

func TestDetectPersonalInfo(t *testing.T) {
	doc := buildSampleTemplate(t)
	matches := DetectPersonalInfo(Sequence(doc))

	var name, contact *CandidateMatch
	for i := range matches {
		switch matches[i].Type {
		case FullName:
			name = &matches[i]
		case ContactInfo:
			contact = &matches[i]
		}
	}

	if name == nil {
		t.Fatal("no full_name candidate")
	}
	if name.Text != "John Example" {
		t.Errorf("name = %q", name.Text)
	}
	if name.Confidence != 1.0 {
		t.Errorf("name confidence = %v", name.Confidence)
	}

	if contact == nil {
		t.Fatal("no contact_info candidate")
	}
	if contact.Confidence != 0.9 {
		t.Errorf("contact confidence = %v", contact.Confidence)
	}
}

func TestDetectPersonalInfoLargestFontWins(t *testing.T) {
	doc := docx.New()
	doc.AddParagraph("Curriculum Vitae")
	big := doc.AddParagraph("")
	big.AddRun("Jane Roe").SetSizeHalfPoints(64)
	small := doc.AddParagraph("")
	small.AddRun("Senior Engineer").SetSizeHalfPoints(24)

	matches := DetectPersonalInfo(Sequence(doc))
	for _, m := range matches {
		if m.Type == FullName {
			if m.Text != "Jane Roe" {
				t.Errorf("name = %q, want largest-font line", m.Text)
			}
			return
		}
	}
	t.Fatal("no full_name candidate")
}

func TestDetectPersonalInfoRespectsWindow(t *testing.T) {
	doc := docx.New()
	doc.AddParagraph("Top Line")
	for i := 0; i < personalWindow; i++ {
		doc.AddParagraph("filler content line for the body of the document here")
	}
	doc.AddParagraph("deep@example.com")

	matches := DetectPersonalInfo(Sequence(doc))
	for _, m := range matches {
		if m.Type == ContactInfo {
			t.Errorf("contact found outside window: %q", m.Text)
		}
	}
}

func TestDetectPersonalInfoLongLineNotName(t *testing.T) {
	doc := docx.New()
	p := doc.AddParagraph("")
	p.AddRun("A very long headline that could not possibly be a person's name").SetSizeHalfPoints(48)
	p2 := doc.AddParagraph("")
	p2.AddRun("Sam Low").SetSizeHalfPoints(32)

	matches := DetectPersonalInfo(Sequence(doc))
	for _, m := range matches {
		if m.Type == FullName && m.Text != "Sam Low" {
			t.Errorf("name = %q", m.Text)
		}
	}
}
