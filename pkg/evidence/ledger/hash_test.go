package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProjection() Projection {
	return Projection{
		RequestId:        "req-42",
		Time:             "2024-05-01T10:00:00Z",
		Status:           "FINAL",
		EngineVersion:    "1.4.0",
		CorpusVersion:    "0.1.0",
		SnapshotPointer:  "s3://snapshots/req-42",
		HsCandidate:      "0407199000",
		Confidence:       0.92,
		GirPath:          []string{"GIR1", "GIR6"},
		CitationIds:      []string{"cit_b", "cit_a"},
		EvidenceBundleId: "eb_req-42",
	}
}

func TestHashReproducible(t *testing.T) {
	first, err := Hash(baseProjection())
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := Hash(baseProjection())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHashInvariantToCitationOrder(t *testing.T) {
	ordered := baseProjection()
	ordered.CitationIds = []string{"cit_a", "cit_b", "cit_c"}

	shuffled := baseProjection()
	shuffled.CitationIds = []string{"cit_c", "cit_a", "cit_b"}

	h1, err := Hash(ordered)
	require.NoError(t, err)
	h2, err := Hash(shuffled)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashChangesWithAuditedFields(t *testing.T) {
	base, err := Hash(baseProjection())
	require.NoError(t, err)

	changed := baseProjection()
	changed.HsCandidate = "0407119000"
	other, err := Hash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	changed = baseProjection()
	changed.SnapshotPointer = "s3://snapshots/other"
	other, err = Hash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestHashNilGirPathEqualsEmpty(t *testing.T) {
	withNil := baseProjection()
	withNil.GirPath = nil

	withEmpty := baseProjection()
	withEmpty.GirPath = []string{}

	h1, err := Hash(withNil)
	require.NoError(t, err)
	h2, err := Hash(withEmpty)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashDoesNotMutateInput(t *testing.T) {
	p := baseProjection()
	p.CitationIds = []string{"cit_z", "cit_a"}

	_, err := Hash(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"cit_z", "cit_a"}, p.CitationIds)
}
