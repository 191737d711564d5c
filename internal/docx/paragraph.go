package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Paragraph is a view over a w:p element.
type Paragraph struct {
	doc *Document
	h   Handle
}

// ParagraphAt wraps a paragraph handle. The caller must know h refers to
// a w:p element.
func (d *Document) ParagraphAt(h Handle) Paragraph { return Paragraph{doc: d, h: h} }

// Handle returns the paragraph's arena handle.
func (p Paragraph) Handle() Handle { return p.h }

// Text concatenates the text of all runs in document order.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Runs lists the paragraph's runs, including runs nested in hyperlinks.
func (p Paragraph) Runs() []Run {
	var runs []Run
	for _, c := range p.doc.nodes[p.h].children {
		if p.doc.isElem(c, "r") {
			runs = append(runs, Run{doc: p.doc, h: c})
		} else if p.doc.isElem(c, "hyperlink") {
			for _, rc := range p.doc.childElems(c, "r") {
				runs = append(runs, Run{doc: p.doc, h: rc})
			}
		}
	}
	return runs
}

// SetText replaces the paragraph content with a single run holding text.
// Paragraph properties are kept; the first existing run's formatting is
// carried over to the replacement run.
func (p Paragraph) SetText(text string) {
	d := p.doc
	var rPr Handle = None
	if runs := p.Runs(); len(runs) > 0 {
		if props := d.firstChild(runs[0].h, "rPr"); props != None {
			rPr = d.Clone(props)
		}
	}

	kids := append([]Handle(nil), d.nodes[p.h].children...)
	for _, c := range kids {
		if !d.isElem(c, "pPr") {
			d.Detach(c)
		}
	}

	if text == "" {
		return
	}
	run := d.alloc(node{kind: kindElement, space: wordNS, local: "r"})
	if rPr != None {
		d.appendChild(run, rPr)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			d.appendChild(run, d.alloc(node{kind: kindElement, space: wordNS, local: "br"}))
		}
		t := d.alloc(node{kind: kindElement, space: wordNS, local: "t"})
		if line != strings.TrimSpace(line) {
			d.nodes[t].attrs = []xml.Attr{{Name: xml.Name{Local: "xml:space"}, Value: "preserve"}}
		}
		d.appendChild(t, d.alloc(node{kind: kindText, text: line}))
		d.appendChild(run, t)
	}
	d.appendChild(p.h, run)
}

// Clear removes the paragraph's content but keeps the paragraph itself.
func (p Paragraph) Clear() { p.SetText("") }

// Remove detaches the paragraph from the document.
func (p Paragraph) Remove() { p.doc.Detach(p.h) }

// AddRun appends a run with the given text and returns it.
func (p Paragraph) AddRun(text string) Run {
	d := p.doc
	run := d.alloc(node{kind: kindElement, space: wordNS, local: "r"})
	t := d.alloc(node{kind: kindElement, space: wordNS, local: "t"})
	if text != strings.TrimSpace(text) {
		d.nodes[t].attrs = []xml.Attr{{Name: xml.Name{Local: "xml:space"}, Value: "preserve"}}
	}
	d.appendChild(t, d.alloc(node{kind: kindText, text: text}))
	d.appendChild(run, t)
	d.appendChild(p.h, run)
	return Run{doc: d, h: run}
}

// InsertParagraphBefore creates a new paragraph with the given text
// immediately before this one.
func (p Paragraph) InsertParagraphBefore(text string) Paragraph {
	d := p.doc
	np := d.alloc(node{kind: kindElement, space: wordNS, local: "p"})
	d.InsertBefore(p.h, np)
	out := Paragraph{doc: d, h: np}
	if text != "" {
		out.AddRun(text)
	}
	return out
}

const protectedAttr = "w:protected"

// SetProtected marks the paragraph as a recognized header so cleaning and
// filling never overwrite it. The mark is stored as an element attribute
// and survives a save/load round trip.
func (p Paragraph) SetProtected() {
	p.doc.setAttr(p.h, protectedAttr, "true")
}

// Protected reports whether the paragraph carries the header mark.
func (p Paragraph) Protected() bool {
	v, ok := p.doc.attr(p.h, "protected")
	return ok && v == "true"
}

// Run is a view over a w:r element.
type Run struct {
	doc *Document
	h   Handle
}

// Text concatenates the run's text elements; explicit breaks and tabs
// become newline and tab characters.
func (r Run) Text() string {
	var sb strings.Builder
	for _, c := range r.doc.nodes[r.h].children {
		switch {
		case r.doc.isElem(c, "t"):
			for _, tc := range r.doc.nodes[c].children {
				if r.doc.nodes[tc].kind == kindText {
					sb.WriteString(r.doc.nodes[tc].text)
				}
			}
		case r.doc.isElem(c, "br"):
			sb.WriteByte('\n')
		case r.doc.isElem(c, "tab"):
			sb.WriteByte('\t')
		}
	}
	return sb.String()
}

// Bold reports whether the run is bold.
func (r Run) Bold() bool {
	props := r.doc.firstChild(r.h, "rPr")
	if props == None {
		return false
	}
	b := r.doc.firstChild(props, "b")
	if b == None {
		return false
	}
	if v, ok := r.doc.attr(b, "val"); ok {
		return v != "false" && v != "0"
	}
	return true
}

// SizeHalfPoints returns the run font size in half-points, or 0 when the
// run inherits its size.
func (r Run) SizeHalfPoints() int {
	props := r.doc.firstChild(r.h, "rPr")
	if props == None {
		return 0
	}
	sz := r.doc.firstChild(props, "sz")
	if sz == None {
		return 0
	}
	v, ok := r.doc.attr(sz, "val")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (r Run) props() Handle {
	props := r.doc.firstChild(r.h, "rPr")
	if props == None {
		props = r.doc.alloc(node{kind: kindElement, space: wordNS, local: "rPr"})
		r.doc.insertChild(r.h, props, 0)
	}
	return props
}

// SetBold makes the run bold.
func (r Run) SetBold() Run {
	props := r.props()
	if r.doc.firstChild(props, "b") == None {
		r.doc.appendChild(props, r.doc.alloc(node{kind: kindElement, space: wordNS, local: "b"}))
	}
	return r
}

// SetSizeHalfPoints sets the run font size in half-points.
func (r Run) SetSizeHalfPoints(v int) Run {
	props := r.props()
	sz := r.doc.firstChild(props, "sz")
	if sz == None {
		sz = r.doc.alloc(node{kind: kindElement, space: wordNS, local: "sz"})
		r.doc.appendChild(props, sz)
	}
	r.doc.setAttr(sz, "w:val", strconv.Itoa(v))
	return r
}
