package engine

import (
	"sort"
	"strings"
)

// CandidateMatch is a pre-dedup classification result.
type CandidateMatch struct {
	Index        int
	Type         SectionType
	Confidence   float64
	Text         string
	Kind         ElementKind
	TableIndex   int
	Row, Col     int
	RecordMarker bool
}

// Known false positives: field-label words and coincidental matches
// against skill names seen in real CVs.
var denoiseBlacklist = []string{
	"role", "client", "duration", "company name", "category",
	"technologies", "environment", "stack",
	"c2cz", "sketch", "user experience design", "logo design",
}

// Confidence floors for keeping otherwise-suspect candidates. A
// placeholder-proximity boost can push confidence past 1.0 before the
// final clamp, which is what "exceptionally high" means here.
const (
	shortTextKeepConfidence = 1.1
	colonKeepConfidence     = 0.95
)

// Denoise filters raw classification candidates down to the canonical
// section list: boilerplate recurring more than twice is dropped, then
// very short texts, trailing-colon labels, and blacklisted words; the
// survivors collapse to one per (type, record-marker) key, except
// Skills/Tools which keep one per distinct header text. The result is
// ordered by original sequence index.
func Denoise(candidates []CandidateMatch) []CandidateMatch {
	if len(candidates) == 0 {
		return nil
	}

	freq := map[string]int{}
	for _, c := range candidates {
		freq[strings.ToLower(strings.TrimSpace(c.Text))]++
	}

	best := map[string]CandidateMatch{}
	for _, c := range candidates {
		if c.Type == Unknown {
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(c.Text))
		if freq[lower] > 2 {
			continue
		}
		if len(c.Text) < 5 && c.Confidence <= shortTextKeepConfidence {
			continue
		}
		if strings.HasSuffix(strings.TrimSpace(c.Text), ":") && c.Confidence <= colonKeepConfidence {
			continue
		}
		if blacklisted(lower) {
			continue
		}

		key := dedupKey(c)
		if prev, ok := best[key]; !ok || c.Confidence > prev.Confidence {
			best[key] = c
		}
	}

	out := make([]CandidateMatch, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func dedupKey(c CandidateMatch) string {
	marker := "0"
	if c.RecordMarker {
		marker = "1"
	}
	if c.Type == Skills || c.Type == Tools {
		// Multiple skill boxes ("Key Skills", "Other Skills") coexist.
		return c.Type.String() + "|" + marker + "|" + normalizeText(c.Text)
	}
	return c.Type.String() + "|" + marker
}

// blacklisted matches the whole text, not substrings: "stack" must veto
// the bare word without also vetoing the "Tech Stack" banner.
func blacklisted(lower string) bool {
	for _, b := range denoiseBlacklist {
		if lower == b {
			return true
		}
	}
	return false
}
