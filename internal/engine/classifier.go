package engine

import (
	"regexp"
	"strings"
)

// Classification is the result of labeling one content element.
type Classification struct {
	Type         SectionType
	Confidence   float64
	RecordMarker bool
}

// unknown is the degenerate classification; classifiers never fail, they
// degrade to this.
var unknown = Classification{Type: Unknown}

// headerThreshold is the minimum post-bonus score (0-100) for an element
// to qualify as a section header.
const headerThreshold = 80

var (
	bulletPrefixes = []string{"-", "•", "▪", "*", "➢"}

	fieldLabelPrefixes = []string{
		"Role:", "Client:", "Tools:", "Environment:", "Technologies:",
		"Duration:", "Responsibilities:", "Description:", "Category:",
		"Project Title:", "Technology Stack:", "Tech Stack:",
		"Company Name:", "Employer:", "Location:",
	}

	labelKeywords = map[string]bool{
		"category": true, "environment": true, "technologies": true,
		"tools": true, "responsibilities": true, "description": true,
		"details": true,
	}

	recordMarkerRe = regexp.MustCompile(`(?i)(project|assignment|task|work|experience|employment|job)\s*#?\d+`)
	markerHintRe   = regexp.MustCompile(`#\d+|\d+\.`)
)

// Classify labels a single element as a section banner, a record marker,
// or unknown, with a confidence score in [0,1]. It is deterministic: the
// same element always yields the same result.
func Classify(el ContentElement) Classification {
	text := el.Text()
	if text == "" {
		return unknown
	}
	for _, b := range bulletPrefixes {
		if strings.HasPrefix(text, b) {
			return unknown
		}
	}
	lower := strings.ToLower(text)
	for _, p := range fieldLabelPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return unknown
		}
	}

	labelStyle := isLabelStyle(el, text)
	wordCount := len(strings.Fields(text))
	norm := normalizeText(text)
	exactType, exact := exactSynonym(norm)
	if (labelStyle || wordCount <= 2) && labelKeywords[lower] && (labelStyle || !exact) {
		return unknown
	}
	if wordCount > 6 && !containsPlaceholder(text) {
		return unknown
	}

	if exact {
		// Exact banner equality is never a per-record delimiter.
		return Classification{Type: exactType, Confidence: 1.0}
	}

	isRecord := recordMarkerRe.MatchString(lower)

	upper := strings.ToUpper(text)
	bestType := Unknown
	bestScore := 0
	bestSyn := ""
	for _, stype := range synonymOrder {
		for _, syn := range sectionSynonyms[stype] {
			score := tokenSetRatio(upper, strings.ToUpper(syn))
			if len(text) > len(syn)+15 && stype != Summary {
				score -= 30
			}
			if score > bestScore {
				bestScore = score
				bestType = stype
				bestSyn = syn
			}
		}
	}

	if el.Bold() {
		bestScore += 10
	}
	// The column bonus needs a shared token: fuzzy residue alone must not
	// turn an arbitrary value cell into a skills header.
	if (bestType == Skills || bestType == Tools) && (el.Col == 1 || el.Col == 2) &&
		tokensOverlap(text, bestSyn) {
		bestScore += 25
	}

	if bestScore >= headerThreshold && !labelStyle {
		if bestScore > 100 {
			bestScore = 100
		}
		if !isRecord && (markerHintRe.MatchString(text) || strings.HasSuffix(text, ":")) {
			isRecord = true
		}
		return Classification{
			Type:         bestType,
			Confidence:   float64(bestScore) / 100.0,
			RecordMarker: isRecord,
		}
	}

	if isRecord {
		// A record marker resolves by keyword even without a banner match.
		if strings.Contains(lower, "project") {
			return Classification{Type: Projects, Confidence: 1.0, RecordMarker: true}
		}
		if strings.Contains(lower, "experience") || strings.Contains(lower, "work") ||
			strings.Contains(lower, "employment") || strings.Contains(lower, "job") {
			return Classification{Type: WorkExperience, Confidence: 1.0, RecordMarker: true}
		}
	}
	return unknown
}

// synonymOrder fixes the evaluation order over sectionSynonyms so that
// score ties resolve the same way on every call.
var synonymOrder = []SectionType{
	Summary, WorkExperience, Skills, Tools, Projects, Education, Certifications,
}

// exactSynonym resolves normalized text that equals a banner synonym
// outright, bypassing fuzzy scoring.
func exactSynonym(norm string) (SectionType, bool) {
	for _, stype := range synonymOrder {
		for _, syn := range sectionSynonyms[stype] {
			if norm == normalizeText(syn) {
				return stype, true
			}
		}
	}
	return Unknown, false
}

// isLabelStyle reports whether the element looks like a field label
// rather than a section banner: a short colon-terminated line, or the
// label column of a table row.
func isLabelStyle(el ContentElement, text string) bool {
	if strings.HasSuffix(text, ":") && len(strings.Fields(text)) < 6 {
		return true
	}
	if el.Kind == KindCell && el.Col == 0 {
		norm := normalizeText(text)
		if labelKeywords[norm] {
			return true
		}
		for _, p := range fieldLabelPrefixes {
			if norm == normalizeText(p) {
				return true
			}
		}
	}
	return false
}
