package docx

import "strings"

// Table is a view over a w:tbl element.
type Table struct {
	doc *Document
	h   Handle
}

// TableAt wraps a table handle.
func (d *Document) TableAt(h Handle) Table { return Table{doc: d, h: h} }

// Handle returns the table's arena handle.
func (t Table) Handle() Handle { return t.h }

// Rows lists the table's rows.
func (t Table) Rows() []Row {
	var rows []Row
	for _, c := range t.doc.childElems(t.h, "tr") {
		rows = append(rows, Row{doc: t.doc, h: c})
	}
	return rows
}

// Row is a view over a w:tr element.
type Row struct {
	doc *Document
	h   Handle
}

// Cells lists the row's cells in column order.
func (r Row) Cells() []Cell {
	var cells []Cell
	for _, c := range r.doc.childElems(r.h, "tc") {
		cells = append(cells, Cell{doc: r.doc, h: c})
	}
	return cells
}

// Cell is a view over a w:tc element. A cell holds its own block
// sequence, recursively including nested tables.
type Cell struct {
	doc *Document
	h   Handle
}

// Handle returns the cell's arena handle.
func (c Cell) Handle() Handle { return c.h }

// Paragraphs lists the cell's direct paragraphs.
func (c Cell) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, p := range c.doc.childElems(c.h, "p") {
		out = append(out, Paragraph{doc: c.doc, h: p})
	}
	return out
}

// Tables lists tables nested directly in the cell.
func (c Cell) Tables() []Table {
	var out []Table
	for _, t := range c.doc.childElems(c.h, "tbl") {
		out = append(out, Table{doc: c.doc, h: t})
	}
	return out
}

// Text joins the text of the cell's paragraphs with newlines.
func (c Cell) Text() string {
	var parts []string
	for _, p := range c.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// AddParagraph appends a paragraph with the given text to the cell.
func (c Cell) AddParagraph(text string) Paragraph {
	np := c.doc.alloc(node{kind: kindElement, space: wordNS, local: "p"})
	c.doc.appendChild(c.h, np)
	p := Paragraph{doc: c.doc, h: np}
	if text != "" {
		p.AddRun(text)
	}
	return p
}

// SetText clears the cell down to a single paragraph holding text.
func (c Cell) SetText(text string) {
	paras := c.Paragraphs()
	if len(paras) == 0 {
		c.AddParagraph(text)
		return
	}
	paras[0].SetText(text)
	for _, extra := range paras[1:] {
		extra.Remove()
	}
}
