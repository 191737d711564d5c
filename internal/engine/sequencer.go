package engine

import (
	"strings"

	"github.com/jackzampolin/stencil/internal/docx"
)

// ElementKind distinguishes standalone paragraphs from table-cell content.
type ElementKind int

const (
	KindStandalone ElementKind = iota
	KindCell
)

// ContentElement is one flattened, addressable unit of document content.
// Elements are recomputed on every traversal and never persisted.
type ContentElement struct {
	Index      int
	Kind       ElementKind
	Para       docx.Paragraph
	Table      docx.Handle // owning table, docx.None when standalone
	TableIndex int         // ordinal of the owning table in traversal order, -1 when standalone
	Row, Col   int         // cell coordinates, -1 when standalone
}

// Text returns the element's trimmed raw text.
func (e ContentElement) Text() string {
	return strings.TrimSpace(e.Para.Text())
}

// Bold reports whether any run in the element is bold.
func (e ContentElement) Bold() bool {
	for _, r := range e.Para.Runs() {
		if r.Bold() {
			return true
		}
	}
	return false
}

// MaxSizeHalfPoints returns the largest explicit run font size, or 0.
func (e ContentElement) MaxSizeHalfPoints() int {
	max := 0
	for _, r := range e.Para.Runs() {
		if s := r.SizeHalfPoints(); s > max {
			max = s
		}
	}
	return max
}

// Sequence flattens the document's block tree into an ordered,
// de-duplicated element list: headers and footers first, then the body in
// pre-order, recursing row-major then column-major into table cells and
// into any nested tables. An identity-based seen-set guarantees no block
// is yielded twice even when wrappers would revisit it; running Sequence
// twice on an unmodified document yields identical sequences.
func Sequence(doc *docx.Document) []ContentElement {
	s := &sequencer{doc: doc, seen: map[docx.Handle]bool{}}
	for _, root := range doc.ContentRoots() {
		s.container(root, docx.None, -1, -1, -1)
	}
	return s.out
}

type sequencer struct {
	doc       *docx.Document
	seen      map[docx.Handle]bool
	out       []ContentElement
	numTables int
}

func (s *sequencer) container(h docx.Handle, table docx.Handle, tableIdx, row, col int) {
	for _, block := range s.doc.Blocks(h) {
		switch {
		case s.doc.IsParagraph(block):
			if s.seen[block] {
				continue
			}
			s.seen[block] = true
			el := ContentElement{
				Index:      len(s.out),
				Kind:       KindStandalone,
				Para:       s.doc.ParagraphAt(block),
				Table:      table,
				TableIndex: tableIdx,
				Row:        row,
				Col:        col,
			}
			if table != docx.None {
				el.Kind = KindCell
			}
			s.out = append(s.out, el)

		case s.doc.IsTable(block):
			if s.seen[block] {
				continue
			}
			s.seen[block] = true
			idx := s.numTables
			s.numTables++
			t := s.doc.TableAt(block)
			for r, tr := range t.Rows() {
				for c, cell := range tr.Cells() {
					if s.seen[cell.Handle()] {
						continue
					}
					s.seen[cell.Handle()] = true
					s.container(cell.Handle(), block, idx, r, c)
				}
			}

		case s.doc.IsSDT(block):
			if content := s.doc.SDTContent(block); content != docx.None && !s.seen[content] {
				s.seen[content] = true
				s.container(content, table, tableIdx, row, col)
			}
		}
	}
}
