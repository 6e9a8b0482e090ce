package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, MinLimit, ClampLimit(-3))
	assert.Equal(t, MaxLimit, ClampLimit(20))
	assert.Equal(t, 5, ClampLimit(5))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit))
}

func TestScoreAndDedupRankOrder(t *testing.T) {
	hits := []RawHit{
		{ChunkId: "chk_a", DocumentId: "doc_1", Text: "first hit"},
		{ChunkId: "chk_b", DocumentId: "doc_1", Text: "second hit"},
		{ChunkId: "chk_c", DocumentId: "doc_2", Text: "third hit"},
	}

	scored := ScoreAndDedup(hits, "fresh eggs")

	assert.Len(t, scored, 3)
	assert.Equal(t, "chk_a", scored[0].Hit.ChunkId)
	assert.Equal(t, BaseScore-1, scored[0].Score)
	assert.Equal(t, BaseScore-2, scored[1].Score)
	assert.Equal(t, BaseScore-3, scored[2].Score)
}

func TestScoreAndDedupTariffBoosts(t *testing.T) {
	hits := []RawHit{
		{ChunkId: "chk_plain", DocumentId: "doc_1", Text: "other birds' eggs"},
		{ChunkId: "chk_compact", DocumentId: "doc_1", Text: "code 0407199000 applies"},
		{ChunkId: "chk_spaced", DocumentId: "doc_2", Text: "0407 19 90 00 Other"},
		{ChunkId: "chk_both", DocumentId: "doc_2", Text: "0407199000 aka 0407 19 90 00"},
	}

	scored := ScoreAndDedup(hits, "0407.19.90.00")

	byId := make(map[string]int, len(scored))
	for _, s := range scored {
		byId[s.Hit.ChunkId] = s.Score
	}

	assert.Equal(t, BaseScore-1, byId["chk_plain"])
	assert.Equal(t, BaseScore-2+CompactBoost, byId["chk_compact"])
	assert.Equal(t, BaseScore-3+SpacedBoost, byId["chk_spaced"])
	assert.Equal(t, BaseScore-4+CompactBoost+SpacedBoost, byId["chk_both"])

	// boosted hits outrank earlier unboosted ones
	assert.Equal(t, "chk_both", scored[0].Hit.ChunkId)
}

func TestScoreAndDedupKeepsMaxScore(t *testing.T) {
	hits := []RawHit{
		{ChunkId: "chk_dup", DocumentId: "doc_1", Text: "plain mention"},
		{ChunkId: "chk_other", DocumentId: "doc_2", Text: "plain mention"},
		// same chunk again, later rank but boosted text
		{ChunkId: "chk_dup", DocumentId: "doc_1", Text: "mentions 0407199000"},
	}

	scored := ScoreAndDedup(hits, "0407199000")

	assert.Len(t, scored, 2)
	assert.Equal(t, "chk_dup", scored[0].Hit.ChunkId)
	assert.Equal(t, BaseScore-3+CompactBoost, scored[0].Score)
}

func TestScoreAndDedupNoBoostBelowFourDigits(t *testing.T) {
	hits := []RawHit{
		{ChunkId: "chk_a", DocumentId: "doc_1", Text: "chapter 40 covers rubber"},
	}
	scored := ScoreAndDedup(hits, "chapter 40")
	assert.Equal(t, BaseScore-1, scored[0].Score)
}

func TestDiversifyPerDocumentCap(t *testing.T) {
	sorted := []Scored{
		{Hit: RawHit{ChunkId: "chk_1", DocumentId: "doc_a"}, Score: 100},
		{Hit: RawHit{ChunkId: "chk_2", DocumentId: "doc_a"}, Score: 99},
		{Hit: RawHit{ChunkId: "chk_3", DocumentId: "doc_a"}, Score: 98},
		{Hit: RawHit{ChunkId: "chk_4", DocumentId: "doc_a"}, Score: 97},
		{Hit: RawHit{ChunkId: "chk_5", DocumentId: "doc_b"}, Score: 96},
	}

	selected := Diversify(sorted, 10)

	// the fourth chunk of doc_a is rejected, not re-queued
	assert.Equal(t, []string{"chk_1", "chk_2", "chk_3", "chk_5"}, selected)
}

func TestDiversifyRespectsLimit(t *testing.T) {
	sorted := []Scored{
		{Hit: RawHit{ChunkId: "chk_1", DocumentId: "doc_a"}, Score: 100},
		{Hit: RawHit{ChunkId: "chk_2", DocumentId: "doc_b"}, Score: 99},
		{Hit: RawHit{ChunkId: "chk_3", DocumentId: "doc_c"}, Score: 98},
	}

	assert.Equal(t, []string{"chk_1", "chk_2"}, Diversify(sorted, 2))
	assert.Empty(t, Diversify(nil, 5))
}
