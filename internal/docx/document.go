// Package docx reads, edits, and writes OOXML word-processing containers.
//
// The package keeps every parsed part as a generic XML node tree in a
// single arena, so edits preserve formatting runs, properties, and any
// markup the engine does not understand. Zip parts that are never edited
// (styles, fonts, themes, relationships) are copied into the output
// byte-for-byte from the source archive.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMalformed reports a container that could not be read as a .docx file.
var ErrMalformed = errors.New("malformed document")

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"

// Part is one parsed XML part of the container.
type Part struct {
	Name string
	Root Handle
}

type entry struct {
	name string
	data []byte // verbatim copy when part is nil
	part *Part
}

// Document is a loaded word-processing container.
type Document struct {
	path     string
	nodes    []node
	prefixes map[string]string // namespace URI -> prefix
	entries  []entry
	main     *Part
	headers  []*Part
	footers  []*Part
	body     Handle
}

// Open reads a .docx file from disk.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := OpenBytes(data)
	if err != nil {
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// OpenBytes reads a .docx container from memory.
func OpenBytes(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open zip: %v", ErrMalformed, err)
	}

	d := &Document{prefixes: map[string]string{}}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open part %s: %v", ErrMalformed, f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read part %s: %v", ErrMalformed, f.Name, err)
		}

		if parseable(f.Name) {
			root, err := d.parsePart(content)
			if err != nil {
				return nil, fmt.Errorf("%w: parse %s: %v", ErrMalformed, f.Name, err)
			}
			p := &Part{Name: f.Name, Root: root}
			d.entries = append(d.entries, entry{name: f.Name, part: p})
			switch {
			case f.Name == "word/document.xml":
				d.main = p
			case strings.HasPrefix(f.Name, "word/header"):
				d.headers = append(d.headers, p)
			case strings.HasPrefix(f.Name, "word/footer"):
				d.footers = append(d.footers, p)
			}
			continue
		}
		d.entries = append(d.entries, entry{name: f.Name, data: content})
	}

	if d.main == nil {
		return nil, fmt.Errorf("%w: word/document.xml not found", ErrMalformed)
	}
	d.body = d.firstChild(d.main.Root, "body")
	if d.body == None {
		return nil, fmt.Errorf("%w: document has no body", ErrMalformed)
	}
	sortParts(d.headers)
	sortParts(d.footers)
	return d, nil
}

func parseable(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	return (strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")) &&
		strings.HasSuffix(name, ".xml")
}

func sortParts(parts []*Part) {
	sort.Slice(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string { return d.path }

// Body returns the handle of the main document body element.
func (d *Document) Body() Handle { return d.body }

// ContentRoots lists the roots of all parts holding visible content, in
// traversal order: headers, footers, then the main body.
func (d *Document) ContentRoots() []Handle {
	var roots []Handle
	for _, p := range d.headers {
		roots = append(roots, p.Root)
	}
	for _, p := range d.footers {
		roots = append(roots, p.Root)
	}
	roots = append(roots, d.body)
	return roots
}

// Blocks lists the block-level children (paragraphs, tables, structured
// content wrappers) of a body, cell, or wrapper node.
func (d *Document) Blocks(container Handle) []Handle {
	var out []Handle
	for _, c := range d.nodes[container].children {
		if d.isElem(c, "p") || d.isElem(c, "tbl") || d.isElem(c, "sdt") {
			out = append(out, c)
		}
	}
	return out
}

// IsParagraph reports whether h is a paragraph element.
func (d *Document) IsParagraph(h Handle) bool { return d.isElem(h, "p") }

// IsTable reports whether h is a table element.
func (d *Document) IsTable(h Handle) bool { return d.isElem(h, "tbl") }

// IsSDT reports whether h is a structured document tag wrapper.
func (d *Document) IsSDT(h Handle) bool { return d.isElem(h, "sdt") }

// SDTContent returns the content container of a structured document tag.
func (d *Document) SDTContent(h Handle) Handle {
	return d.firstChild(h, "sdtContent")
}

// Save writes the container to path. The file is assembled in a temporary
// sibling and renamed into place, so a failed write never leaves a
// partial file behind.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".stencil-*.docx")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	tmpName := tmp.Name()
	if err := d.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close output file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize output file: %w", err)
	}
	return nil
}

// WriteTo writes the container to a writer.
func (d *Document) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, e := range d.entries {
		fw, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", e.name, err)
		}
		if e.part != nil {
			var sb strings.Builder
			sb.WriteString(xmlDecl)
			d.serialize(e.part.Root, &sb)
			if _, err := io.WriteString(fw, sb.String()); err != nil {
				return fmt.Errorf("write %s: %w", e.name, err)
			}
			continue
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

// Bytes renders the container to memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
