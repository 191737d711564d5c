package engine

import (
	"regexp"
	"strings"
)

// personalWindow bounds how deep into the document the name/contact block
// is searched for.
const personalWindow = 20

var digitRunRe = regexp.MustCompile(`\d{5,}`)

// DetectPersonalInfo scans the top-of-document window for the candidate's
// name and contact lines. The name is the short element with the largest
// explicit run font size; absent any size signal, the first very-top
// element within the word-count bound is taken. Contact lines are flagged
// by an "@", a long digit run, or "linkedin".
func DetectPersonalInfo(els []ContentElement) []CandidateMatch {
	window := els
	if len(window) > personalWindow {
		window = window[:personalWindow]
	}

	var matches []CandidateMatch
	nameIdx := -1
	maxSize := 0

	for i, el := range window {
		text := el.Text()
		wordCount := len(strings.Fields(text))
		veryTop := i < 2

		if size := el.MaxSizeHalfPoints(); size > 0 {
			if wordCount <= 4 && len(text) < 40 {
				if size > maxSize || (veryTop && nameIdx < 0) {
					maxSize = size
					nameIdx = i
				}
			} else if veryTop && wordCount <= 4 && nameIdx < 0 {
				nameIdx = i
			}
		} else if veryTop && wordCount <= 4 && wordCount > 0 && nameIdx < 0 {
			nameIdx = i
		}
	}

	if nameIdx >= 0 {
		matches = append(matches, matchFromElement(window[nameIdx], FullName, 1.0))
	}

	for i, el := range window {
		if i == nameIdx {
			continue
		}
		lower := strings.ToLower(el.Text())
		if strings.Contains(lower, "@") || strings.Contains(lower, "linkedin") ||
			digitRunRe.MatchString(lower) {
			matches = append(matches, matchFromElement(el, ContactInfo, 0.9))
		}
	}
	return matches
}

func matchFromElement(el ContentElement, stype SectionType, confidence float64) CandidateMatch {
	return CandidateMatch{
		Index:      el.Index,
		Type:       stype,
		Confidence: confidence,
		Text:       el.Text(),
		Kind:       el.Kind,
		TableIndex: el.TableIndex,
		Row:        el.Row,
		Col:        el.Col,
	}
}
