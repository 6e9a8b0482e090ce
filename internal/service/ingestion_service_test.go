package service

import (
	"context"
	"testing"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/pkg/events"
	"customs-evidence-be/pkg/evidence/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRunIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.ingestion.StartRun(ctx, "acme", &dto.StartRunRequest{
		RunId: "run-1", SourceId: "src-eurlex", CorpusVersion: "0.1.0",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusRunning, first.Status)

	second, err := f.ingestion.StartRun(ctx, "acme", &dto.StartRunRequest{
		RunId: "run-1", SourceId: "src-eurlex", CorpusVersion: "0.1.0",
	})
	require.NoError(t, err)
	assert.Equal(t, first.RunId, second.RunId)
	assert.Equal(t, first.StartedAt, second.StartedAt)

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, events.TypeIngestionRunStarted, f.sink.events[0].EventType)
	assert.Equal(t, "acme", f.sink.events[0].TenantId)
}

func TestFinishRunUnknownRunReturnsNil(t *testing.T) {
	f := newFixture()
	resp, err := f.ingestion.FinishRun(context.Background(), "acme", "run-missing")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestRunLifecycleEvents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.startRun(t, "acme", "run-ok")
	f.startRun(t, "acme", "run-bad")

	finished, err := f.ingestion.FinishRun(ctx, "acme", "run-ok")
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusSuccess, finished.Status)

	failed, err := f.ingestion.FailRun(ctx, "acme", "run-bad", &dto.FailRunRequest{Error: "crawler crashed"})
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusFailed, failed.Status)

	types := make([]string, 0, len(f.sink.events))
	for _, e := range f.sink.events {
		types = append(types, e.EventType)
	}
	assert.Equal(t, []string{
		events.TypeIngestionRunStarted,
		events.TypeIngestionRunStarted,
		events.TypeIngestionRunFinished,
		events.TypeIngestionRunFailed,
	}, types)
}

func TestListLatestRunsBucketsByStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.startRun(t, "acme", "run-a")
	f.startRun(t, "acme", "run-b")
	f.startRun(t, "acme", "run-c")

	_, err := f.ingestion.FinishRun(ctx, "acme", "run-b")
	require.NoError(t, err)
	_, err = f.ingestion.FailRun(ctx, "acme", "run-c", &dto.FailRunRequest{Error: "boom"})
	require.NoError(t, err)

	resp, err := f.ingestion.ListLatestRuns(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, resp.Running, 1)
	require.Len(t, resp.Success, 1)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "run-a", resp.Running[0].RunId)
	assert.Equal(t, "run-b", resp.Success[0].RunId)
	assert.Equal(t, "run-c", resp.Failed[0].RunId)
	require.NotNil(t, resp.Failed[0].Error)
	assert.Equal(t, "boom", *resp.Failed[0].Error)
}

func TestIngestBatchRejectsNonRunningRun(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := nomenclatureDoc("https://eur-lex.example/cn2024", citedChunk(1, "0407 Birds' eggs, in shell"))

	resp, err := f.ingestion.IngestBatch(ctx, "acme", batchRequest("run-unknown", doc))
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeRunNotRunning, resp.Error)

	f.startRun(t, "acme", "run-closed")
	_, err = f.ingestion.FinishRun(ctx, "acme", "run-closed")
	require.NoError(t, err)

	resp, err = f.ingestion.IngestBatch(ctx, "acme", batchRequest("run-closed", doc))
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeRunNotRunning, resp.Error)
}

func TestIngestBatchWritesCitationsBeforeChunks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.startRun(t, "acme", "run-1")

	child := citedChunk(2, "0407 19 90 00 Other fresh eggs")
	parentOrdinal := 1
	child.ParentOrdinal = &parentOrdinal

	resp := f.ingestOne(t, "acme", "run-1",
		nomenclatureDoc("https://eur-lex.example/cn2024",
			citedChunk(1, "0407 Birds' eggs, in shell, fresh"),
			child,
		),
	)
	assert.Equal(t, entity.RunStats{
		DocumentsNew:     1,
		ChunksWritten:    2,
		CitationsWritten: 2,
	}, resp.Stats)

	uow := f.factory.NewUnitOfWork(ctx)
	documentId := identity.DocumentID("https://eur-lex.example/cn2024")

	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByTenant{TenantId: "acme"},
		specification.ByDocumentId{DocumentId: documentId},
	)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	for _, chunk := range chunks {
		assert.True(t, chunk.IndexPending)
		citation, err := uow.CitationRepository().FindOne(ctx,
			specification.ByTenant{TenantId: "acme"},
			specification.ByCitationId{CitationId: chunk.CitationId},
		)
		require.NoError(t, err)
		require.NotNil(t, citation, "chunk %s stored without its proof row", chunk.ChunkId)
		assert.True(t, citation.HasProof())
	}

	var childChunk *entity.Chunk
	for _, chunk := range chunks {
		if chunk.Ordinal == 2 {
			childChunk = chunk
		}
	}
	require.NotNil(t, childChunk)
	require.NotNil(t, childChunk.ParentChunkId)

	parentHash := identity.TextHash("0407 Birds' eggs, in shell, fresh")
	assert.Equal(t, identity.ChunkID(documentId, 1, parentHash), *childChunk.ParentChunkId)
}

func TestIngestBatchStatsAccumulateAcrossBatches(t *testing.T) {
	f := newFixture()
	f.startRun(t, "acme", "run-1")

	doc := nomenclatureDoc("https://eur-lex.example/cn2024", citedChunk(1, "0407 Birds' eggs"))
	first := f.ingestOne(t, "acme", "run-1", doc)
	assert.Equal(t, 1, first.Stats.DocumentsNew)

	second := f.ingestOne(t, "acme", "run-1", doc)
	assert.Equal(t, entity.RunStats{
		DocumentsNew:     1,
		DocumentsUpdated: 1,
		ChunksWritten:    2,
		CitationsWritten: 2,
	}, second.Stats)
}

func TestIngestBatchMissingProofAbortsButRetainsEarlierUpserts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.startRun(t, "acme", "run-1")

	bad := citedChunk(2, "0408 Birds' eggs, not in shell")
	bad.SnapshotHashSha256 = ""

	resp, err := f.ingestion.IngestBatch(ctx, "acme", batchRequest("run-1",
		nomenclatureDoc("https://eur-lex.example/cn2024",
			citedChunk(1, "0407 Birds' eggs, in shell"),
			bad,
		),
	))
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingCitationProof, resp.Error)
	assert.NotEmpty(t, resp.ChunkId)
	assert.Equal(t, "chk_", resp.ChunkId[:4])

	// everything before the offending chunk stays written
	assert.Equal(t, entity.RunStats{
		DocumentsNew:     1,
		ChunksWritten:    1,
		CitationsWritten: 1,
	}, resp.Stats)

	uow := f.factory.NewUnitOfWork(ctx)
	count, err := uow.ChunkRepository().Count(ctx, specification.ByTenant{TenantId: "acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	run, err := uow.IngestionRunRepository().FindOne(ctx,
		specification.ByTenant{TenantId: "acme"},
		specification.ByRunId{RunId: "run-1"},
	)
	require.NoError(t, err)
	assert.Equal(t, resp.Stats, run.Stats)
}

func TestIngestBatchMissingPageRangeAborts(t *testing.T) {
	f := newFixture()
	f.startRun(t, "acme", "run-1")

	bad := citedChunk(1, "0407 Birds' eggs")
	bad.Locator.PageTo = nil

	resp, err := f.ingestion.IngestBatch(context.Background(), "acme",
		batchRequest("run-1", nomenclatureDoc("https://eur-lex.example/cn2024", bad)))
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingCitationProof, resp.Error)
}

func TestReingestResetsIndexingState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.startRun(t, "acme", "run-1")

	doc := nomenclatureDoc("https://eur-lex.example/cn2024", citedChunk(1, "0407 Birds' eggs"))
	f.ingestOne(t, "acme", "run-1", doc)

	sweep, err := f.indexing.IndexPendingChunks(ctx, "acme", &dto.IndexSweepRequest{Limit: 10})
	require.NoError(t, err)
	require.True(t, sweep.Ok)
	require.Equal(t, 1, sweep.Indexed)

	f.ingestOne(t, "acme", "run-1", doc)

	pending, err := f.indexing.PendingIndexCount(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
}

func TestReportUpsertAndCounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.ingestion.UpsertReport(ctx, "acme", &dto.UpsertReportRequest{
		CorpusVersion: "0.1.0",
		SourceArchive: "cn2024.zip",
		Counts:        entity.ReportCounts{Documents: 2, Chunks: 40, Citations: 40},
	})
	require.NoError(t, err)

	updated, err := f.ingestion.UpsertReport(ctx, "acme", &dto.UpsertReportRequest{
		CorpusVersion: "0.1.0",
		SourceArchive: "cn2024-r2.zip",
		Counts:        entity.ReportCounts{Documents: 3, Chunks: 55, Citations: 55},
	})
	require.NoError(t, err)
	assert.Equal(t, "cn2024-r2.zip", updated.SourceArchive)

	got, err := f.ingestion.GetReport(ctx, "acme", "0.1.0")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Counts.Documents)

	missing, err := f.ingestion.GetReport(ctx, "acme", "9.9.9")
	require.NoError(t, err)
	assert.Nil(t, missing)

	counts, err := f.ingestion.CountsByTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "ingestion_reports", counts.Source)
	assert.Equal(t, 1, counts.Reports)
	assert.Equal(t, 55, counts.Counts.Chunks)
}

func TestCountsByTenantWithoutReports(t *testing.T) {
	f := newFixture()
	counts, err := f.ingestion.CountsByTenant(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "none", counts.Source)
	assert.Equal(t, 0, counts.Reports)
	assert.Equal(t, entity.ReportCounts{}, counts.Counts)
}

func TestReportDiagnosticsCacheInvalidatedOnUpsert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.ingestion.UpsertReport(ctx, "acme", &dto.UpsertReportRequest{
		CorpusVersion: "0.1.0", SourceArchive: "a.zip",
	})
	require.NoError(t, err)

	first, err := f.ingestion.ReportDiagnostics(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = f.ingestion.UpsertReport(ctx, "acme", &dto.UpsertReportRequest{
		CorpusVersion: "0.2.0", SourceArchive: "b.zip",
	})
	require.NoError(t, err)

	second, err := f.ingestion.ReportDiagnostics(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, second, 2)
}
