package query

import (
	"regexp"
	"strings"
)

// Expansion caps. Variants are cheap to generate but every variant is one
// search pass, so the list is hard-capped to keep retrieval latency bounded.
const (
	MaxVariants   = 8
	MinVariantLen = 2
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	quotesRe      = regexp.MustCompile("[“”„\"']")
	nonDigitRe    = regexp.MustCompile(`\D`)
	nonDigitSpRe  = regexp.MustCompile(`[^0-9 ]`)
	compactRunRe  = regexp.MustCompile(`^\d{4,10}$`)
	punctuationRe = regexp.MustCompile(`[\p{P}\p{S}]+`)
)

// Normalize collapses whitespace and strips quote characters.
func Normalize(q string) string {
	q = quotesRe.ReplaceAllString(q, "")
	q = whitespaceRe.ReplaceAllString(q, " ")
	return strings.TrimSpace(q)
}

// DigitRun returns the digits of q with separators removed.
// Callers treat runs of 4+ digits as tariff-code material.
func DigitRun(q string) string {
	return nonDigitRe.ReplaceAllString(q, "")
}

// SpacedGrouping returns the fully grouped form of a compact digit run
// (chapter/heading/subheading/national boundaries), or "" when the run is
// not a 4-10 digit sequence.
func SpacedGrouping(digits string) string {
	if !compactRunRe.MatchString(digits) {
		return ""
	}
	parts := []string{digits[0:4]}
	if len(digits) >= 6 {
		parts = append(parts, digits[4:6])
	}
	if len(digits) >= 8 {
		parts = append(parts, digits[6:8])
	}
	if len(digits) >= 10 {
		parts = append(parts, digits[8:10])
	}
	return strings.Join(parts, " ")
}

// tariffVariants extracts a 4-10 digit run (HS/TARIC shaped) and returns
// spacing and prefix variants so a search for a long national code also
// matches documents indexed under shorter headings.
//
// 0407199000 -> "0407 19 90 00", "0407 19 90", "0407 19", "0407"
func tariffVariants(q string) []string {
	cleaned := nonDigitSpRe.ReplaceAllString(q, " ")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
	digits := strings.ReplaceAll(cleaned, " ", "")

	out := newOrderedSet()

	// already spaced tokens, if the user typed them
	if cleaned != "" {
		out.add(cleaned)
	}

	if compactRunRe.MatchString(digits) {
		out.add(digits)
		out.add(SpacedGrouping(digits))

		// prefixes, for recall against shorter headings
		out.add(digits[0:4])
		if len(digits) >= 6 {
			out.add(digits[0:4] + " " + digits[4:6])
		}
		if len(digits) >= 8 {
			out.add(digits[0:4] + " " + digits[4:6] + " " + digits[6:8])
		}
		if len(digits) >= 10 {
			out.add(digits[0:4] + " " + digits[4:6] + " " + digits[6:8] + " " + digits[8:10])
		}
	}

	return out.values()
}

// Expand turns raw user text into an ordered, deduplicated list of search
// variants. The normalized original always comes first. Deterministic:
// identical input yields an identical ordered set.
func Expand(userQ string) []string {
	q := Normalize(userQ)

	variants := newOrderedSet()
	variants.add(q)

	for _, v := range tariffVariants(q) {
		variants.add(v)
	}

	// fallback: strip punctuation
	stripped := punctuationRe.ReplaceAllString(q, " ")
	variants.add(strings.TrimSpace(whitespaceRe.ReplaceAllString(stripped, " ")))

	// final: drop short useless entries, hard cap for latency
	out := make([]string, 0, MaxVariants)
	for _, v := range variants.values() {
		v = strings.TrimSpace(v)
		if len(v) < MinVariantLen {
			continue
		}
		out = append(out, v)
		if len(out) >= MaxVariants {
			break
		}
	}
	return out
}

// orderedSet preserves insertion order while deduplicating.
type orderedSet struct {
	seen map[string]bool
	list []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.list = append(s.list, v)
}

func (s *orderedSet) values() []string {
	return s.list
}
