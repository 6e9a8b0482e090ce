package service

import (
	"context"
	"testing"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/pkg/logger"
	"customs-evidence-be/internal/repository/memory"
	"customs-evidence-be/pkg/evidence/identity"

	"github.com/stretchr/testify/require"
)

// nopLogger keeps service tests quiet.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

// capturingSink records run lifecycle events handed to the stream hub.
type capturingSink struct {
	events []capturedRunEvent
}

type capturedRunEvent struct {
	TenantId  string
	EventType string
	Run       dto.RunSummary
}

func (s *capturingSink) PublishRunEvent(ctx context.Context, tenantId string, eventType string, run dto.RunSummary) {
	s.events = append(s.events, capturedRunEvent{TenantId: tenantId, EventType: eventType, Run: run})
}

type fixture struct {
	factory   *memory.Factory
	sink      *capturingSink
	tenant    ITenantService
	ingestion IIngestionService
	indexing  IIndexingService
	retrieval IRetrievalService
	decision  IDecisionService
}

func newFixture() *fixture {
	factory := memory.NewFactory()
	sink := &capturingSink{}
	log := nopLogger{}

	tenant := NewTenantService(factory)
	ingestion := NewIngestionService(factory, nil, nil, sink, log)
	indexing := NewIndexingService(factory, tenant, log)
	retrieval := NewRetrievalService(factory, tenant, ingestion, log)
	decision := NewDecisionService(factory, nil, log)

	return &fixture{
		factory:   factory,
		sink:      sink,
		tenant:    tenant,
		ingestion: ingestion,
		indexing:  indexing,
		retrieval: retrieval,
		decision:  decision,
	}
}

func (f *fixture) startRun(t *testing.T, tenantId, runId string) {
	t.Helper()
	_, err := f.ingestion.StartRun(context.Background(), tenantId, &dto.StartRunRequest{
		RunId:         runId,
		SourceId:      "src-eurlex",
		CorpusVersion: "0.1.0",
	})
	require.NoError(t, err)
}

// citedChunk builds an ingestible chunk whose citation proof is complete.
func citedChunk(ordinal int, text string) dto.ChunkInput {
	from := ordinal
	to := ordinal + 1
	return dto.ChunkInput{
		Ordinal:            ordinal,
		Text:               text,
		SnapshotPointer:    "s3://snapshots/cn2024.pdf",
		SnapshotHashSha256: identity.Sha256Hex("snapshot:" + text),
		Locator:            dto.LocatorInput{PageFrom: &from, PageTo: &to},
	}
}

func nomenclatureDoc(sourceUrl string, chunks ...dto.ChunkInput) dto.DocumentInput {
	return dto.DocumentInput{
		SourceName:       "EUR-Lex",
		SourceUrl:        sourceUrl,
		SourceTrustLevel: "official",
		Jurisdiction:     "EU",
		InstrumentType:   "nomenclature",
		Title:            "Combined Nomenclature",
		Language:         "en",
		SnapshotPointer:  "s3://snapshots/cn2024.pdf",
		Chunks:           chunks,
	}
}

func batchRequest(runId string, docs ...dto.DocumentInput) *dto.IngestBatchRequest {
	return &dto.IngestBatchRequest{
		RunId:         runId,
		SourceId:      "src-eurlex",
		CorpusVersion: "0.1.0",
		Documents:     docs,
	}
}

// ingestOne runs one successful batch and fails the test on any guardrail.
func (f *fixture) ingestOne(t *testing.T, tenantId, runId string, docs ...dto.DocumentInput) *dto.IngestBatchResponse {
	t.Helper()
	resp, err := f.ingestion.IngestBatch(context.Background(), tenantId, batchRequest(runId, docs...))
	require.NoError(t, err)
	require.True(t, resp.Ok, "batch rejected: %s (chunk %s)", resp.Error, resp.ChunkId)
	return resp
}
