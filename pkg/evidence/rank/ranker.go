package rank

import (
	"sort"
	"strings"

	"customs-evidence-be/pkg/evidence/query"
)

// Scoring model: the external search index owns relevance ordering, so the
// base score only encodes position in the concatenated multi-pass hit
// stream (earlier variants and earlier hits score higher). Tariff-code
// boosts reward literal occurrences of the queried digit run.
const (
	BaseScore    = 10000
	CompactBoost = 500
	SpacedBoost  = 350

	MaxPerDocument = 3

	DefaultLimit = 8
	MinLimit     = 1
	MaxLimit     = 12
)

// RawHit is one relevance-ordered hit from the search store.
type RawHit struct {
	ChunkId    string
	DocumentId string
	Text       string
}

type Scored struct {
	Hit   RawHit
	Score int
}

// ClampLimit bounds a caller-requested result limit.
func ClampLimit(limit int) int {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ScoreAndDedup assigns each hit a rank-based score plus tariff-code
// boosts, then deduplicates by chunk id keeping the maximum score.
// The result is sorted by descending score.
func ScoreAndDedup(hits []RawHit, queryText string) []Scored {
	digits := query.DigitRun(queryText)
	hasDigits := len(digits) >= 4
	spaced := ""
	if hasDigits {
		spaced = query.SpacedGrouping(digits)
	}

	byChunk := make(map[string]Scored, len(hits))
	order := make([]string, 0, len(hits))

	rank := 0
	for _, hit := range hits {
		rank++
		score := BaseScore - rank

		if hasDigits {
			if strings.Contains(hit.Text, digits) {
				score += CompactBoost
			}
			if spaced != "" && strings.Contains(hit.Text, spaced) {
				score += SpacedBoost
			}
		}

		existing, seen := byChunk[hit.ChunkId]
		if !seen {
			order = append(order, hit.ChunkId)
		}
		if !seen || score > existing.Score {
			byChunk[hit.ChunkId] = Scored{Hit: hit, Score: score}
		}
	}

	out := make([]Scored, 0, len(byChunk))
	for _, id := range order {
		out = append(out, byChunk[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Diversify walks the score-ordered list and selects up to limit chunk
// ids, rejecting (not re-queuing) any candidate once its document already
// holds MaxPerDocument slots.
func Diversify(sorted []Scored, limit int) []string {
	perDoc := make(map[string]int)
	selected := make([]string, 0, limit)

	for _, s := range sorted {
		if perDoc[s.Hit.DocumentId] >= MaxPerDocument {
			continue
		}
		perDoc[s.Hit.DocumentId]++
		selected = append(selected, s.Hit.ChunkId)
		if len(selected) >= limit {
			break
		}
	}
	return selected
}
