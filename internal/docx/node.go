package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Handle is a stable identity for a node in the document arena. Handles
// survive structural edits: detaching a node invalidates its position but
// never its identity, so seen-sets and cursors can key on them safely.
type Handle int

// None is the zero-value handle for "no node".
const None Handle = -1

type nodeKind uint8

const (
	kindElement nodeKind = iota
	kindText
	kindRaw // comments, processing instructions, directives: kept verbatim
)

type node struct {
	kind     nodeKind
	space    string // namespace URI (or raw prefix when undeclared)
	local    string
	attrs    []xml.Attr
	text     string // character data or raw markup
	parent   Handle
	children []Handle
}

// Well-known OOXML namespaces, used to recover prefixes when a part does
// not declare one on its root element.
var knownPrefixes = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":    "w",
	"http://schemas.microsoft.com/office/word/2010/wordml":            "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":            "w15",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships": "r",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":     "mc",
	"http://schemas.openxmlformats.org/drawingml/2006/main":           "a",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://www.w3.org/XML/1998/namespace":                            "xml",
}

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
const w14NS = "http://schemas.microsoft.com/office/word/2010/wordml"

func (d *Document) alloc(n node) Handle {
	n.parent = None
	d.nodes = append(d.nodes, n)
	return Handle(len(d.nodes) - 1)
}

func (d *Document) node(h Handle) *node { return &d.nodes[h] }

func (d *Document) appendChild(parent, child Handle) {
	d.nodes[child].parent = parent
	d.nodes[parent].children = append(d.nodes[parent].children, child)
}

func (d *Document) insertChild(parent, child Handle, at int) {
	d.nodes[child].parent = parent
	kids := d.nodes[parent].children
	kids = append(kids, None)
	copy(kids[at+1:], kids[at:])
	kids[at] = child
	d.nodes[parent].children = kids
}

// childIndex returns the position of h among its parent's children, or -1.
func (d *Document) childIndex(h Handle) int {
	parent := d.nodes[h].parent
	if parent == None {
		return -1
	}
	for i, c := range d.nodes[parent].children {
		if c == h {
			return i
		}
	}
	return -1
}

// InsertBefore places child immediately before ref in ref's parent.
func (d *Document) InsertBefore(ref, child Handle) {
	at := d.childIndex(ref)
	if at < 0 {
		return
	}
	d.insertChild(d.nodes[ref].parent, child, at)
}

// InsertAfter places child immediately after ref in ref's parent.
func (d *Document) InsertAfter(ref, child Handle) {
	at := d.childIndex(ref)
	if at < 0 {
		return
	}
	d.insertChild(d.nodes[ref].parent, child, at+1)
}

// Detach removes h from its parent's child list. The node stays in the
// arena so its handle remains valid.
func (d *Document) Detach(h Handle) {
	parent := d.nodes[h].parent
	if parent == None {
		return
	}
	kids := d.nodes[parent].children
	for i, c := range kids {
		if c == h {
			d.nodes[parent].children = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	d.nodes[h].parent = None
}

// Clone deep-copies the subtree rooted at h into fresh arena nodes.
// Word-specific uniqueness identifiers (w14:paraId, w14:textId) are
// stripped from every cloned element: duplicating them produces the
// "unreadable content" repair prompt when Word opens the file.
func (d *Document) Clone(h Handle) Handle {
	src := d.nodes[h]
	cp := node{kind: src.kind, space: src.space, local: src.local, text: src.text}
	if len(src.attrs) > 0 {
		cp.attrs = make([]xml.Attr, 0, len(src.attrs))
		for _, a := range src.attrs {
			if isUniquenessID(a.Name) {
				continue
			}
			cp.attrs = append(cp.attrs, a)
		}
	}
	nh := d.alloc(cp)
	for _, c := range src.children {
		d.appendChild(nh, d.Clone(c))
	}
	return nh
}

func isUniquenessID(n xml.Name) bool {
	if n.Local != "paraId" && n.Local != "textId" {
		return false
	}
	return n.Space == w14NS || n.Space == "w14"
}

func (d *Document) isElem(h Handle, local string) bool {
	if h == None {
		return false
	}
	n := &d.nodes[h]
	return n.kind == kindElement && n.local == local
}

// firstChild returns the first child element with the given local name.
func (d *Document) firstChild(h Handle, local string) Handle {
	for _, c := range d.nodes[h].children {
		if d.isElem(c, local) {
			return c
		}
	}
	return None
}

func (d *Document) childElems(h Handle, local string) []Handle {
	var out []Handle
	for _, c := range d.nodes[h].children {
		if d.isElem(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// attr returns the value of the attribute whose local name matches,
// regardless of how the namespace prefix was recorded.
func (d *Document) attr(h Handle, local string) (string, bool) {
	for _, a := range d.nodes[h].attrs {
		if a.Name.Local == local || strings.HasSuffix(a.Name.Local, ":"+local) {
			return a.Value, true
		}
	}
	return "", false
}

func (d *Document) setAttr(h Handle, name, value string) {
	n := &d.nodes[h]
	for i, a := range n.attrs {
		if a.Name.Local == name || strings.HasSuffix(a.Name.Local, ":"+name) ||
			(strings.Contains(name, ":") && strings.HasSuffix(name, ":"+a.Name.Local)) {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// parsePart decodes one XML part into the arena and returns the root handle.
func (d *Document) parsePart(data []byte) (Handle, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []Handle
	root := None

	push := func(h Handle) {
		if len(stack) == 0 {
			if root == None {
				root = h
			}
		} else {
			d.appendChild(stack[len(stack)-1], h)
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return None, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]xml.Attr, len(t.Attr))
			copy(attrs, t.Attr)
			for _, a := range attrs {
				if a.Name.Space == "xmlns" {
					d.prefixes[a.Value] = a.Name.Local
				} else if a.Name.Space == "" && a.Name.Local == "xmlns" {
					d.prefixes[a.Value] = ""
				}
			}
			h := d.alloc(node{kind: kindElement, space: t.Name.Space, local: t.Name.Local, attrs: attrs})
			push(h)
			stack = append(stack, h)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				push(d.alloc(node{kind: kindText, text: string(t)}))
			}
		case xml.Comment:
			if len(stack) > 0 {
				push(d.alloc(node{kind: kindRaw, text: "<!--" + string(t) + "-->"}))
			}
		case xml.ProcInst:
			if len(stack) > 0 {
				push(d.alloc(node{kind: kindRaw, text: "<?" + t.Target + " " + string(t.Inst) + "?>"}))
			}
		case xml.Directive:
			if len(stack) > 0 {
				push(d.alloc(node{kind: kindRaw, text: "<!" + string(t) + ">"}))
			}
		}
	}
	if root == None {
		return None, fmt.Errorf("empty xml part")
	}
	return root, nil
}

func (d *Document) qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if p, ok := d.prefixes[n.Space]; ok {
		if p == "" {
			return n.Local
		}
		return p + ":" + n.Local
	}
	if p, ok := knownPrefixes[n.Space]; ok {
		return p + ":" + n.Local
	}
	// The decoder leaves undeclared prefixes as-is; anything without a
	// URI shape is treated as a literal prefix.
	if !strings.ContainsAny(n.Space, "/:") {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

func (d *Document) attrName(n xml.Name) string {
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	return d.qname(n)
}

// serialize renders the subtree rooted at h as XML.
func (d *Document) serialize(h Handle, sb *strings.Builder) {
	n := &d.nodes[h]
	switch n.kind {
	case kindText:
		escapeText(sb, n.text)
	case kindRaw:
		sb.WriteString(n.text)
	case kindElement:
		name := d.qname(xml.Name{Space: n.space, Local: n.local})
		sb.WriteByte('<')
		sb.WriteString(name)
		for _, a := range n.attrs {
			sb.WriteByte(' ')
			sb.WriteString(d.attrName(a.Name))
			sb.WriteString(`="`)
			escapeAttr(sb, a.Value)
			sb.WriteByte('"')
		}
		if len(n.children) == 0 {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for _, c := range n.children {
			d.serialize(c, sb)
		}
		sb.WriteString("</")
		sb.WriteString(name)
		sb.WriteByte('>')
	}
}

func escapeText(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
}

func escapeAttr(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '"':
			sb.WriteString("&quot;")
		case '\n':
			sb.WriteString("&#10;")
		case '\t':
			sb.WriteString("&#9;")
		default:
			sb.WriteRune(r)
		}
	}
}
