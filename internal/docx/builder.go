package docx

import "encoding/xml"

// New creates an empty document with the minimal set of container parts.
func New() *Document {
	d := &Document{prefixes: map[string]string{
		wordNS: "w",
		w14NS:  "w14",
		"http://schemas.openxmlformats.org/officeDocument/2006/relationships": "r",
	}}

	root := d.alloc(node{kind: kindElement, space: wordNS, local: "document", attrs: []xml.Attr{
		{Name: xml.Name{Space: "xmlns", Local: "w"}, Value: wordNS},
		{Name: xml.Name{Space: "xmlns", Local: "w14"}, Value: w14NS},
		{Name: xml.Name{Space: "xmlns", Local: "r"}, Value: "http://schemas.openxmlformats.org/officeDocument/2006/relationships"},
	}})
	body := d.alloc(node{kind: kindElement, space: wordNS, local: "body"})
	d.appendChild(root, body)
	d.appendChild(body, d.alloc(node{kind: kindElement, space: wordNS, local: "sectPr"}))

	d.main = &Part{Name: "word/document.xml", Root: root}
	d.body = body
	d.entries = []entry{
		{name: "[Content_Types].xml", data: []byte(contentTypesXML)},
		{name: "_rels/.rels", data: []byte(rootRelsXML)},
		{name: "word/_rels/document.xml.rels", data: []byte(documentRelsXML)},
		{name: "word/styles.xml", data: []byte(stylesXML)},
		{name: "word/document.xml", part: d.main},
	}
	return d
}

// appendBlock places a new block before the trailing section properties.
func (d *Document) appendBlock(h Handle) {
	kids := d.nodes[d.body].children
	if n := len(kids); n > 0 && d.isElem(kids[n-1], "sectPr") {
		d.insertChild(d.body, h, n-1)
		return
	}
	d.appendChild(d.body, h)
}

// AddParagraph appends a body paragraph with the given text.
func (d *Document) AddParagraph(text string) Paragraph {
	np := d.alloc(node{kind: kindElement, space: wordNS, local: "p"})
	d.appendBlock(np)
	p := Paragraph{doc: d, h: np}
	if text != "" {
		p.AddRun(text)
	}
	return p
}

// AddHeading appends a bold Heading1-styled paragraph.
func (d *Document) AddHeading(text string) Paragraph {
	np := d.alloc(node{kind: kindElement, space: wordNS, local: "p"})
	pPr := d.alloc(node{kind: kindElement, space: wordNS, local: "pPr"})
	style := d.alloc(node{kind: kindElement, space: wordNS, local: "pStyle"})
	d.setAttr(style, "w:val", "Heading1")
	d.appendChild(pPr, style)
	d.appendChild(np, pPr)
	d.appendBlock(np)
	p := Paragraph{doc: d, h: np}
	p.AddRun(text).SetBold()
	return p
}

// AddTable appends a rows x cols grid table with empty cells.
func (d *Document) AddTable(rows, cols int) Table {
	tbl := d.alloc(node{kind: kindElement, space: wordNS, local: "tbl"})

	tblPr := d.alloc(node{kind: kindElement, space: wordNS, local: "tblPr"})
	style := d.alloc(node{kind: kindElement, space: wordNS, local: "tblStyle"})
	d.setAttr(style, "w:val", "TableGrid")
	d.appendChild(tblPr, style)
	d.appendChild(tbl, tblPr)

	grid := d.alloc(node{kind: kindElement, space: wordNS, local: "tblGrid"})
	for i := 0; i < cols; i++ {
		d.appendChild(grid, d.alloc(node{kind: kindElement, space: wordNS, local: "gridCol"}))
	}
	d.appendChild(tbl, grid)

	for r := 0; r < rows; r++ {
		tr := d.alloc(node{kind: kindElement, space: wordNS, local: "tr"})
		for c := 0; c < cols; c++ {
			tc := d.alloc(node{kind: kindElement, space: wordNS, local: "tc"})
			d.appendChild(tc, d.alloc(node{kind: kindElement, space: wordNS, local: "p"}))
			d.appendChild(tr, tc)
		}
		d.appendChild(tbl, tr)
	}
	d.appendBlock(tbl)
	return Table{doc: d, h: tbl}
}
