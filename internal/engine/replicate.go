package engine

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackzampolin/stencil/internal/docx"
)

var hashNumRe = regexp.MustCompile(`#\d+`)

// replicaThreshold is the minimum classifier confidence for a top-level
// element to act as a section boundary during replication.
const replicaThreshold = 0.7

type taggedBlock struct {
	h       docx.Handle
	section SectionType
	banner  bool // a section title, never replicated
	record  bool // a per-record delimiter, starts a new block
}

// Replicate scales the repeatable structural blocks of each section to
// the record counts in counts. The section banner is never replicated;
// the last content block is the blueprint that gets cloned or trimmed.
// Cloned blocks carry no duplicated uniqueness identifiers, and any "#N"
// marker in a cloned paragraph is renumbered sequentially.
func Replicate(doc *docx.Document, counts map[SectionType]int, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	top := doc.Blocks(doc.Body())
	if len(top) == 0 {
		return nil
	}

	tagged := make([]taggedBlock, 0, len(top))
	current := Unknown
	for _, h := range top {
		tb := taggedBlock{h: h, section: current}
		if doc.IsParagraph(h) {
			el := ContentElement{Para: doc.ParagraphAt(h), Table: docx.None, TableIndex: -1, Row: -1, Col: -1}
			cls := Classify(el)
			if cls.Type != Unknown && cls.Confidence >= replicaThreshold {
				if cls.RecordMarker {
					tb.record = true
					if current == Unknown {
						tb.section = cls.Type
						current = cls.Type
					}
				} else {
					tb.banner = true
					tb.section = cls.Type
					current = cls.Type
				}
			}
		}
		tagged = append(tagged, tb)
	}

	for stype, needed := range counts {
		if err := replicateSection(doc, tagged, stype, needed, log); err != nil {
			return err
		}
	}
	return nil
}

func replicateSection(doc *docx.Document, tagged []taggedBlock, stype SectionType, needed int, log *slog.Logger) error {
	var section []taggedBlock
	for _, tb := range tagged {
		if tb.section == stype {
			section = append(section, tb)
		}
	}
	if len(section) == 0 {
		return nil
	}

	// Group contiguous elements into logical blocks: banners and record
	// markers both force a new block.
	var blocks [][]taggedBlock
	var cur []taggedBlock
	for _, tb := range section {
		if (tb.banner || tb.record) && len(cur) > 0 {
			blocks = append(blocks, cur)
			cur = nil
		}
		cur = append(cur, tb)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}

	// Separate the banner from the blueprint content.
	var content [][]taggedBlock
	if blocks[0][0].banner {
		if len(blocks[0]) > 1 {
			content = append(content, blocks[0][1:])
		}
		content = append(content, blocks[1:]...)
	} else {
		content = blocks
	}
	if len(content) == 0 {
		log.Warn("no content blocks to replicate", "section", stype.String())
		return nil
	}

	existing := len(content)
	blueprint := content[existing-1]
	log.Debug("replication plan",
		"section", stype.String(), "existing", existing, "needed", needed)

	switch {
	case needed > existing:
		last := blueprint[len(blueprint)-1].h
		for i := existing; i < needed; i++ {
			for _, tb := range blueprint {
				clone := doc.Clone(tb.h)
				doc.InsertAfter(last, clone)
				if doc.IsParagraph(clone) {
					p := doc.ParagraphAt(clone)
					if text := p.Text(); strings.Contains(text, "#") {
						p.SetText(hashNumRe.ReplaceAllString(text, "#"+strconv.Itoa(i+1)))
					}
				}
				last = clone
			}
		}
		log.Info("scaled section up", "section", stype.String(), "blocks", needed)

	case needed < existing && needed > 0:
		for _, block := range content[needed:] {
			for _, tb := range block {
				doc.Detach(tb.h)
			}
		}
		log.Info("scaled section down", "section", stype.String(), "blocks", needed)
	}
	return nil
}
