package engine

import (
	"log/slog"
	"time"

	"github.com/jackzampolin/stencil/internal/docx"
)

// Locator pins a schema section to its position in the source document:
// either a flat paragraph position or a table/row/column coordinate.
type Locator struct {
	Kind       ElementKind
	Paragraph  int // sequence index of the element
	TableIndex int // -1 for standalone paragraphs
	Row, Col   int
}

// TemplateSection is a surviving, finalized schema slot. Sections are
// created once per template ingestion and never mutated afterwards.
type TemplateSection struct {
	Index        int
	Type         SectionType
	Confidence   float64
	HeaderText   string
	Locator      Locator
	RecordMarker bool
	Protected    bool
}

// TemplateSchema is the durable artifact of extraction: the captured
// shape of one template, reused for every fill against it.
type TemplateSchema struct {
	Name       string
	SourceFile string // the cleaned template the filler opens
	Sections   []TemplateSection
	CreatedAt  time.Time
}

// placeholderLookahead is how many elements past a header the extractor
// searches for a placeholder token when boosting confidence.
const placeholderLookahead = 10

// placeholderBoost rewards headers that sit directly above a data slot.
const placeholderBoost = 0.3

// Extract infers a TemplateSchema from a document: it sequences the
// content, classifies every element, folds in the personal-info
// candidates, denoises, and marks every surviving header element
// protected so cleaning and filling never overwrite it.
func Extract(doc *docx.Document, name string, log *slog.Logger) *TemplateSchema {
	if log == nil {
		log = slog.Default()
	}
	els := Sequence(doc)

	var candidates []CandidateMatch
	for _, m := range DetectPersonalInfo(els) {
		// A section banner at the very top is not a name line.
		if m.Index < len(els) && Classify(els[m.Index]).Type != Unknown {
			continue
		}
		candidates = append(candidates, m)
	}
	for i, el := range els {
		c := Classify(el)
		if c.Type == Unknown {
			continue
		}
		confidence := c.Confidence
		if hasPlaceholderNear(els, i) {
			confidence += placeholderBoost
		}
		m := matchFromElement(el, c.Type, confidence)
		m.RecordMarker = c.RecordMarker
		candidates = append(candidates, m)
	}

	final := Denoise(candidates)

	schema := &TemplateSchema{Name: name, SourceFile: doc.Path(), CreatedAt: time.Now()}
	for _, c := range final {
		confidence := c.Confidence
		if confidence > 1.0 {
			confidence = 1.0
		}
		if c.Index < len(els) {
			els[c.Index].Para.SetProtected()
		}
		schema.Sections = append(schema.Sections, TemplateSection{
			Index:        c.Index,
			Type:         c.Type,
			Confidence:   confidence,
			HeaderText:   c.Text,
			RecordMarker: c.RecordMarker,
			Protected:    true,
			Locator: Locator{
				Kind:       c.Kind,
				Paragraph:  c.Index,
				TableIndex: c.TableIndex,
				Row:        c.Row,
				Col:        c.Col,
			},
		})
		log.Debug("schema section",
			"template", name,
			"section", c.Type.String(),
			"header", c.Text,
			"index", c.Index,
			"record_marker", c.RecordMarker,
		)
	}

	log.Info("schema extraction complete",
		"template", name, "sections", len(schema.Sections))
	return schema
}

func hasPlaceholderNear(els []ContentElement, from int) bool {
	for look := 1; look <= placeholderLookahead && from+look < len(els); look++ {
		if containsPlaceholder(els[from+look].Text()) {
			return true
		}
	}
	return false
}
