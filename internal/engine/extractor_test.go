package engine

import (
	"testing"
)

func TestExtractFindsSections(t *testing.T) {
	doc := buildSampleTemplate(t)
	schema := Extract(doc, "sample", testLogger(t))

	if schema.Name != "sample" {
		t.Errorf("Name = %q", schema.Name)
	}
	if schema.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}

	got := map[SectionType]bool{}
	for _, s := range schema.Sections {
		got[s.Type] = true
	}
	for _, want := range []SectionType{FullName, ContactInfo, Summary, Skills, Projects, Education} {
		if !got[want] {
			t.Errorf("missing section %v", want)
		}
	}
}

func TestExtractConfidenceClamped(t *testing.T) {
	doc := buildSampleTemplate(t)
	schema := Extract(doc, "sample", testLogger(t))
	for _, s := range schema.Sections {
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("section %v confidence %v outside [0,1]", s.Type, s.Confidence)
		}
	}
}

func TestExtractOrderedByPosition(t *testing.T) {
	doc := buildSampleTemplate(t)
	schema := Extract(doc, "sample", testLogger(t))
	for i := 1; i < len(schema.Sections); i++ {
		if schema.Sections[i].Index < schema.Sections[i-1].Index {
			t.Fatal("sections not in document order")
		}
	}
}

func TestExtractMarksHeadersProtected(t *testing.T) {
	doc := buildSampleTemplate(t)
	schema := Extract(doc, "sample", testLogger(t))

	for _, s := range schema.Sections {
		if s.Type == FullName || s.Type == ContactInfo {
			continue
		}
		if !s.Protected {
			t.Errorf("section %v (%q) not protected", s.Type, s.HeaderText)
		}
	}
}

func TestExtractRecordMarkers(t *testing.T) {
	doc := buildSampleTemplate(t)
	schema := Extract(doc, "sample", testLogger(t))

	markers := 0
	for _, s := range schema.Sections {
		if s.RecordMarker {
			markers++
			if s.Type != Projects {
				t.Errorf("marker of type %v", s.Type)
			}
		}
	}
	if markers == 0 {
		t.Error("no record markers extracted")
	}
}

func TestExtractDeterministic(t *testing.T) {
	a := Extract(buildSampleTemplate(t), "sample", testLogger(t))
	b := Extract(buildSampleTemplate(t), "sample", testLogger(t))
	if len(a.Sections) != len(b.Sections) {
		t.Fatalf("section counts differ: %d vs %d", len(a.Sections), len(b.Sections))
	}
	for i := range a.Sections {
		if a.Sections[i].Type != b.Sections[i].Type ||
			a.Sections[i].HeaderText != b.Sections[i].HeaderText {
			t.Errorf("section %d differs", i)
		}
	}
}
