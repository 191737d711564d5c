package engine

import (
	"sort"
	"strings"
)

// ratio scores two strings 0-100 by normalized InDel similarity,
// (len(a)+len(b)-distance) / (len(a)+len(b)) with substitutions costing
// two edits. Equivalent to 2*LCS/(len(a)+len(b)), the measure
// python-Levenshtein exposes as ratio().
func ratio(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	dist := indelDistance(ra, rb)
	return (total - dist) * 100 / total
}

func indelDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 2
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// tokenSetRatio is an order- and duplicate-insensitive similarity measure:
// both strings are tokenized into sets, and the best pairwise ratio among
// {intersection, intersection+restA, intersection+restB} is returned.
func tokenSetRatio(a, b string) int {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, diffA, diffB []string
	for t := range ta {
		if tb[t] {
			inter = append(inter, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			diffB = append(diffB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(diffA)
	sort.Strings(diffB)

	s0 := strings.Join(inter, " ")
	s1 := strings.TrimSpace(s0 + " " + strings.Join(diffA, " "))
	s2 := strings.TrimSpace(s0 + " " + strings.Join(diffB, " "))

	best := ratio(s1, s2)
	if s0 != "" {
		if r := ratio(s0, s1); r > best {
			best = r
		}
		if r := ratio(s0, s2); r > best {
			best = r
		}
	}
	return best
}

// tokensOverlap reports whether the two strings share at least one token.
func tokensOverlap(a, b string) bool {
	tb := tokenSet(b)
	for t := range tokenSet(a) {
		if tb[t] {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, t := range strings.Fields(strings.ToLower(s)) {
		t = strings.Trim(t, ".,;:!?()[]{}\"'")
		if t != "" {
			set[t] = true
		}
	}
	return set
}
