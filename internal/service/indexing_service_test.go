package service

import (
	"context"
	"testing"
	"time"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/pkg/evidence/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPendingChunksMarksAndReturnsPayloads(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.startRun(t, "acme", "run-1")
	f.ingestOne(t, "acme", "run-1",
		nomenclatureDoc("https://eur-lex.example/cn2024",
			citedChunk(1, "0407 Birds' eggs, in shell"),
			citedChunk(2, "0407 19 90 00 Other fresh eggs"),
		),
	)

	indexedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	resp, err := f.indexing.IndexPendingChunks(ctx, "acme", &dto.IndexSweepRequest{
		Limit:     10,
		IndexedAt: &indexedAt,
	})
	require.NoError(t, err)
	require.True(t, resp.Ok)
	assert.Equal(t, 2, resp.Indexed)
	assert.Equal(t, "0.1.0", resp.ActiveCorpusVersion)
	require.NotNil(t, resp.IndexedAt)
	assert.Equal(t, indexedAt, *resp.IndexedAt)

	for _, payload := range resp.Chunks {
		require.NotNil(t, payload.Citation)
		assert.Equal(t, "cit_", payload.Citation.CitationId[:4])
		assert.NotEmpty(t, payload.Text)
	}

	uow := f.factory.NewUnitOfWork(ctx)
	chunks, err := uow.ChunkRepository().FindAll(ctx, specification.ByTenant{TenantId: "acme"})
	require.NoError(t, err)
	for _, chunk := range chunks {
		assert.False(t, chunk.IndexPending)
		require.NotNil(t, chunk.IndexedAt)
		assert.Equal(t, indexedAt, *chunk.IndexedAt)
	}
}

func TestIndexPendingChunksHonorsLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.startRun(t, "acme", "run-1")
	f.ingestOne(t, "acme", "run-1",
		nomenclatureDoc("https://eur-lex.example/cn2024",
			citedChunk(1, "chapter one text"),
			citedChunk(2, "chapter two text"),
			citedChunk(3, "chapter three text"),
		),
	)

	resp, err := f.indexing.IndexPendingChunks(ctx, "acme", &dto.IndexSweepRequest{Limit: 2})
	require.NoError(t, err)
	require.True(t, resp.Ok)
	assert.Equal(t, 2, resp.Indexed)

	pending, err := f.indexing.PendingIndexCount(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
	assert.True(t, pending.IsExact)
	assert.Empty(t, pending.Note)
}

func TestIndexPendingChunksAbortsSweepOnUnprovableChunk(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.startRun(t, "acme", "run-1")
	f.ingestOne(t, "acme", "run-1",
		nomenclatureDoc("https://eur-lex.example/cn2024", citedChunk(1, "provable text")),
	)

	// A proof row degraded after ingestion, pointing at a pending chunk.
	uow := f.factory.NewUnitOfWork(ctx)
	documentId := identity.DocumentID("https://eur-lex.example/cn2024")
	badChunkId := identity.ChunkID(documentId, 99, identity.TextHash("degraded text"))
	badCitationId := "cit_degraded0000001"
	require.NoError(t, uow.CitationRepository().Create(ctx, &entity.Citation{
		Id:                 uuid.New(),
		TenantId:           "acme",
		CitationId:         badCitationId,
		DocumentId:         documentId,
		ChunkId:            badChunkId,
		CorpusVersion:      "0.1.0",
		SnapshotPointer:    "s3://snapshots/cn2024.pdf",
		SnapshotHashSha256: "",
		CreatedAt:          time.Now(),
	}))
	require.NoError(t, uow.ChunkRepository().Create(ctx, &entity.Chunk{
		Id:             uuid.New(),
		TenantId:       "acme",
		ChunkId:        badChunkId,
		DocumentId:     documentId,
		Ordinal:        99,
		Text:           "degraded text",
		TextHashSha256: identity.TextHash("degraded text"),
		CitationId:     badCitationId,
		CorpusVersion:  "0.1.0",
		IndexPending:   true,
		CreatedAt:      time.Now(),
	}))

	resp, err := f.indexing.IndexPendingChunks(ctx, "acme", &dto.IndexSweepRequest{Limit: 10})
	require.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, ErrCodeMissingCitationProof, resp.Error)
	assert.Equal(t, badChunkId, resp.ChunkId)
	assert.Zero(t, resp.Indexed)

	// nothing was marked, the provable chunk included
	pending, err := f.indexing.PendingIndexCount(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending.Count)
}

func TestIndexPendingChunksSkipsOtherCorpusVersions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// pending chunk from an older corpus, with full proof
	uow := f.factory.NewUnitOfWork(ctx)
	from, to := 1, 2
	require.NoError(t, uow.CitationRepository().Create(ctx, &entity.Citation{
		Id:                 uuid.New(),
		TenantId:           "acme",
		CitationId:         "cit_old0000000000001",
		DocumentId:         "doc_old000000001",
		ChunkId:            "chk_old0000000000001",
		CorpusVersion:      "0.0.9",
		SnapshotPointer:    "s3://snapshots/old.pdf",
		SnapshotHashSha256: identity.Sha256Hex("old snapshot"),
		Locator:            entity.Locator{PageFrom: &from, PageTo: &to},
		CreatedAt:          time.Now(),
	}))
	require.NoError(t, uow.ChunkRepository().Create(ctx, &entity.Chunk{
		Id:            uuid.New(),
		TenantId:      "acme",
		ChunkId:       "chk_old0000000000001",
		DocumentId:    "doc_old000000001",
		Text:          "old corpus text",
		CitationId:    "cit_old0000000000001",
		CorpusVersion: "0.0.9",
		IndexPending:  true,
		CreatedAt:     time.Now(),
	}))

	resp, err := f.indexing.IndexPendingChunks(ctx, "acme", &dto.IndexSweepRequest{Limit: 10})
	require.NoError(t, err)
	require.True(t, resp.Ok)
	assert.Zero(t, resp.Indexed)

	// the stale chunk stays pending, and does not count against the
	// active corpus either
	pending, err := f.indexing.PendingIndexCount(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)
	assert.True(t, pending.IsExact)
}
