package service

import (
	"context"
	"testing"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/pkg/evidence/identity"
	"customs-evidence-be/pkg/evidence/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// citationIds returns the stored proof ids for everything ingested so far.
func (f *fixture) citationIds(t *testing.T, tenantId string) []string {
	t.Helper()
	uow := f.factory.NewUnitOfWork(context.Background())
	citations, err := uow.CitationRepository().FindAll(context.Background(),
		specification.ByTenant{TenantId: tenantId})
	require.NoError(t, err)
	ids := make([]string, 0, len(citations))
	for _, c := range citations {
		ids = append(ids, c.CitationId)
	}
	return ids
}

func (f *fixture) seedDecisionContext(t *testing.T) (citations []string, bundleId string) {
	t.Helper()
	f.startRun(t, "acme", "run-seed")
	f.ingestOne(t, "acme", "run-seed",
		nomenclatureDoc("https://eur-lex.example/cn2024",
			citedChunk(1, "0407 Birds' eggs, in shell"),
			citedChunk(2, "0407 19 90 00 Other fresh eggs"),
		),
	)
	citations = f.citationIds(t, "acme")
	require.Len(t, citations, 2)

	bundle, err := f.decision.UpsertBundle(context.Background(), "acme", &dto.UpsertBundleRequest{
		RequestId:       "req-42",
		CitationIds:     citations,
		SnapshotPointer: "s3://snapshots/req-42",
	})
	require.NoError(t, err)
	return citations, bundle.BundleId
}

func finalDecision(citations []string, bundleId string) *dto.RecordDecisionRequest {
	return &dto.RecordDecisionRequest{
		RequestId:        "req-42",
		Time:             "2026-08-01T09:30:00Z",
		Status:           entity.DecisionStatusFinal,
		EngineVersion:    "1.4.0",
		CorpusVersion:    "0.1.0",
		SnapshotPointer:  "s3://snapshots/req-42",
		HsCandidate:      "0407199000",
		Confidence:       0.93,
		GirPath:          []string{"GIR1", "GIR6"},
		CitationIds:      citations,
		EvidenceBundleId: bundleId,
	}
}

func TestUpsertBundleDerivesIdFromRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.decision.UpsertBundle(ctx, "acme", &dto.UpsertBundleRequest{
		RequestId:       "req-42",
		CitationIds:     []string{"cit_a"},
		SnapshotPointer: "s3://snapshots/req-42",
	})
	require.NoError(t, err)
	assert.Equal(t, identity.BundleID("req-42"), resp.BundleId)

	// replace, not append
	again, err := f.decision.UpsertBundle(ctx, "acme", &dto.UpsertBundleRequest{
		RequestId:       "req-42",
		CitationIds:     []string{"cit_b"},
		SnapshotPointer: "s3://snapshots/req-42-v2",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.BundleId, again.BundleId)

	uow := f.factory.NewUnitOfWork(ctx)
	bundle, err := uow.EvidenceBundleRepository().FindOne(ctx,
		specification.ByTenant{TenantId: "acme"},
		specification.ByBundleId{BundleId: resp.BundleId},
	)
	require.NoError(t, err)
	require.NotNil(t, bundle)
	assert.Equal(t, []string{"cit_b"}, bundle.CitationIds)
	assert.Equal(t, "s3://snapshots/req-42-v2", bundle.SnapshotPointer)
}

func TestRecordDecisionFinalRequiresCitations(t *testing.T) {
	f := newFixture()
	req := finalDecision(nil, "eb_req-42")

	resp, err := f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingCitations, resp.Error)
}

func TestRecordDecisionStopRequiresReason(t *testing.T) {
	f := newFixture()
	req := finalDecision(nil, "eb_req-42")
	req.Status = entity.DecisionStatusStop

	resp, err := f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingReason, resp.Error)

	empty := ""
	req.Reason = &empty
	resp, err = f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingReason, resp.Error)
}

func TestRecordDecisionRequiresBundle(t *testing.T) {
	f := newFixture()
	req := finalDecision([]string{"cit_a"}, "eb_missing")

	resp, err := f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingEvidenceBundle, resp.Error)
}

func TestRecordDecisionRejectsUnresolvableCitation(t *testing.T) {
	f := newFixture()
	citations, bundleId := f.seedDecisionContext(t)

	// bundle covers the phantom id, so the proof check is what fires
	phantom := "cit_phantom00000001"
	_, err := f.decision.UpsertBundle(context.Background(), "acme", &dto.UpsertBundleRequest{
		RequestId:       "req-42",
		CitationIds:     append(append([]string{}, citations...), phantom),
		SnapshotPointer: "s3://snapshots/req-42",
	})
	require.NoError(t, err)

	req := finalDecision(append(append([]string{}, citations...), phantom), bundleId)
	resp, err := f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingCitationProof, resp.Error)
	assert.Equal(t, phantom, resp.CitationId)
}

func TestRecordDecisionRejectsCitationOutsideBundle(t *testing.T) {
	f := newFixture()
	citations, bundleId := f.seedDecisionContext(t)

	// narrow the bundle to the first citation only
	_, err := f.decision.UpsertBundle(context.Background(), "acme", &dto.UpsertBundleRequest{
		RequestId:       "req-42",
		CitationIds:     citations[:1],
		SnapshotPointer: "s3://snapshots/req-42",
	})
	require.NoError(t, err)

	resp, err := f.decision.RecordDecision(context.Background(), "acme", finalDecision(citations, bundleId))
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeEvidenceBundleMismatch, resp.Error)
}

func TestRecordDecisionRejectsSnapshotPointerMismatch(t *testing.T) {
	f := newFixture()
	citations, bundleId := f.seedDecisionContext(t)

	req := finalDecision(citations, bundleId)
	req.SnapshotPointer = "s3://snapshots/some-other-request"

	resp, err := f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeSnapshotPointerMismatch, resp.Error)
}

func TestRecordDecisionFinalRejectsEmptySnapshotPointer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	citations, _ := f.seedDecisionContext(t)

	// even a bundle with an empty pointer must not let an unpinned
	// FINAL through on pointer equality alone
	bundle, err := f.decision.UpsertBundle(ctx, "acme", &dto.UpsertBundleRequest{
		RequestId:       "req-42",
		CitationIds:     citations,
		SnapshotPointer: "",
	})
	require.NoError(t, err)

	req := finalDecision(citations, bundle.BundleId)
	req.SnapshotPointer = ""

	resp, err := f.decision.RecordDecision(ctx, "acme", req)
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeSnapshotPointerMismatch, resp.Error)
}

func TestRecordDecisionStopAllowsDivergedSnapshotPointer(t *testing.T) {
	f := newFixture()
	_, bundleId := f.seedDecisionContext(t)

	// a STOP halts mid-classification, its pointer may no longer match
	// the bundle and the decision still has to land on the ledger
	reason := "tariff heading disputed, halting for review"
	req := finalDecision(nil, bundleId)
	req.Status = entity.DecisionStatusStop
	req.Reason = &reason
	req.SnapshotPointer = "s3://snapshots/partial-before-stop"

	resp, err := f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	require.True(t, resp.Ok, "guardrail: %s", resp.Error)
	assert.Len(t, resp.DecisionHashSha256, 64)
}

func TestRecordDecisionFinalHappyPath(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	citations, bundleId := f.seedDecisionContext(t)

	req := finalDecision(citations, bundleId)
	resp, err := f.decision.RecordDecision(ctx, "acme", req)
	require.NoError(t, err)
	require.True(t, resp.Ok, "guardrail: %s", resp.Error)
	assert.Len(t, resp.DecisionHashSha256, 64)

	// hash is reproducible from the canonical projection alone
	expected, err := ledger.Hash(ledger.Projection{
		RequestId:        req.RequestId,
		Time:             req.Time,
		Status:           req.Status,
		EngineVersion:    req.EngineVersion,
		CorpusVersion:    req.CorpusVersion,
		SnapshotPointer:  req.SnapshotPointer,
		HsCandidate:      req.HsCandidate,
		Confidence:       req.Confidence,
		GirPath:          req.GirPath,
		CitationIds:      req.CitationIds,
		EvidenceBundleId: req.EvidenceBundleId,
	})
	require.NoError(t, err)
	assert.Equal(t, expected, resp.DecisionHashSha256)

	uow := f.factory.NewUnitOfWork(ctx)
	stored, err := uow.DecisionRepository().FindOne(ctx,
		specification.ByTenant{TenantId: "acme"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, expected, stored.DecisionHashSha256)
	assert.Equal(t, entity.DecisionStatusFinal, stored.Status)
}

func TestRecordDecisionStopWithoutCitations(t *testing.T) {
	f := newFixture()
	_, bundleId := f.seedDecisionContext(t)

	reason := "conflicting explanatory notes, needs a human"
	req := finalDecision(nil, bundleId)
	req.Status = entity.DecisionStatusStop
	req.Reason = &reason

	resp, err := f.decision.RecordDecision(context.Background(), "acme", req)
	require.NoError(t, err)
	require.True(t, resp.Ok, "guardrail: %s", resp.Error)
	assert.Len(t, resp.DecisionHashSha256, 64)
}
