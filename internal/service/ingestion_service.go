package service

import (
	"context"
	"encoding/json"
	"time"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/pkg/logger"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/internal/repository/unitofwork"
	"customs-evidence-be/pkg/events"
	"customs-evidence-be/pkg/evidence/identity"
	pktNats "customs-evidence-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	// Bounded read for runs listings.
	maxRunsRead = 50

	// Reports listing clamp.
	minReportsLimit = 1
	maxReportsLimit = 50

	// How many pending chunks one batch-triggered sweep may process.
	sweepBatchLimit = 200
)

// RunEventSink receives ingestion-run lifecycle events for live streaming.
// The websocket hub implements it; a nil sink disables streaming.
type RunEventSink interface {
	PublishRunEvent(ctx context.Context, tenantId string, eventType string, run dto.RunSummary)
}

type IIngestionService interface {
	StartRun(ctx context.Context, tenantId string, req *dto.StartRunRequest) (*dto.StartRunResponse, error)
	FinishRun(ctx context.Context, tenantId, runId string) (*dto.FinishRunResponse, error)
	FailRun(ctx context.Context, tenantId, runId string, req *dto.FailRunRequest) (*dto.FinishRunResponse, error)
	ListLatestRuns(ctx context.Context, tenantId string) (*dto.ListRunsResponse, error)

	IngestBatch(ctx context.Context, tenantId string, req *dto.IngestBatchRequest) (*dto.IngestBatchResponse, error)

	UpsertReport(ctx context.Context, tenantId string, req *dto.UpsertReportRequest) (*dto.ReportSummary, error)
	GetReport(ctx context.Context, tenantId, corpusVersion string) (*dto.ReportSummary, error)
	ListRecentReports(ctx context.Context, tenantId string, limit int) ([]dto.ReportSummary, error)
	CountsByTenant(ctx context.Context, tenantId string) (*dto.CountsByTenantResponse, error)

	// ReportDiagnostics is the cached variant backing expected-empty
	// retrieval responses. Count projections may lag a little; the
	// active corpus version never goes through here.
	ReportDiagnostics(ctx context.Context, tenantId string) ([]dto.ReportSummary, error)
}

type ingestionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	runEvents        RunEventSink
	reportCache      *cache.Cache
	logger           logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	runEvents RunEventSink,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		runEvents:        runEvents,
		reportCache:      cache.New(30*time.Second, time.Minute),
		logger:           log,
	}
}

func (s *ingestionService) StartRun(ctx context.Context, tenantId string, req *dto.StartRunRequest) (*dto.StartRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.IngestionRunRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByRunId{RunId: req.RunId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Idempotent restart of the same run id.
		return &dto.StartRunResponse{
			RunId:     existing.RunId,
			Status:    existing.Status,
			StartedAt: existing.StartedAt,
		}, nil
	}

	run := &entity.IngestionRun{
		Id:            uuid.New(),
		TenantId:      tenantId,
		RunId:         req.RunId,
		SourceId:      req.SourceId,
		CorpusVersion: req.CorpusVersion,
		Status:        entity.RunStatusRunning,
		StartedAt:     time.Now(),
	}
	if err := uow.IngestionRunRepository().Create(ctx, run); err != nil {
		return nil, err
	}

	s.emitRunEvent(ctx, events.TypeIngestionRunStarted, run)

	return &dto.StartRunResponse{
		RunId:     run.RunId,
		Status:    run.Status,
		StartedAt: run.StartedAt,
	}, nil
}

func (s *ingestionService) FinishRun(ctx context.Context, tenantId, runId string) (*dto.FinishRunResponse, error) {
	return s.closeRun(ctx, tenantId, runId, entity.RunStatusSuccess, nil)
}

func (s *ingestionService) FailRun(ctx context.Context, tenantId, runId string, req *dto.FailRunRequest) (*dto.FinishRunResponse, error) {
	return s.closeRun(ctx, tenantId, runId, entity.RunStatusFailed, &req.Error)
}

func (s *ingestionService) closeRun(ctx context.Context, tenantId, runId, status string, runErr *string) (*dto.FinishRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	run, err := uow.IngestionRunRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByRunId{RunId: runId},
	)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, nil // Not found
	}

	now := time.Now()
	run.Status = status
	run.Error = runErr
	run.FinishedAt = &now
	if err := uow.IngestionRunRepository().Update(ctx, run); err != nil {
		return nil, err
	}

	eventType := events.TypeIngestionRunFinished
	if status == entity.RunStatusFailed {
		eventType = events.TypeIngestionRunFailed
	}
	s.emitRunEvent(ctx, eventType, run)

	return &dto.FinishRunResponse{
		RunId:      run.RunId,
		Status:     run.Status,
		Stats:      run.Stats,
		FinishedAt: now,
	}, nil
}

func (s *ingestionService) ListLatestRuns(ctx context.Context, tenantId string) (*dto.ListRunsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	runs, err := uow.IngestionRunRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.OrderBy{Field: "started_at", Desc: true},
		specification.Limit{N: maxRunsRead},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListRunsResponse{
		Running: []dto.RunSummary{},
		Success: []dto.RunSummary{},
		Failed:  []dto.RunSummary{},
	}
	for _, run := range runs {
		summary := runSummary(run)
		switch run.Status {
		case entity.RunStatusRunning:
			resp.Running = append(resp.Running, summary)
		case entity.RunStatusSuccess:
			resp.Success = append(resp.Success, summary)
		case entity.RunStatusFailed:
			resp.Failed = append(resp.Failed, summary)
		}
	}
	return resp, nil
}

// IngestBatch writes one batch of documents, chunks and citations under a
// running ingestion run. It aborts at the first chunk whose citation proof
// is incomplete; everything upserted before that point stays written, so
// callers must treat batches as at-least-once and retry the whole batch.
func (s *ingestionService) IngestBatch(ctx context.Context, tenantId string, req *dto.IngestBatchRequest) (*dto.IngestBatchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	run, err := uow.IngestionRunRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByRunId{RunId: req.RunId},
	)
	if err != nil {
		return nil, err
	}
	if run == nil || run.Status != entity.RunStatusRunning {
		return &dto.IngestBatchResponse{
			Ok:    false,
			Error: ErrCodeRunNotRunning,
			RunId: req.RunId,
		}, nil
	}

	stats := entity.RunStats{}

	for di := range req.Documents {
		docInput := &req.Documents[di]
		docNew, err := s.upsertDocument(ctx, uow, tenantId, req.CorpusVersion, docInput)
		if err != nil {
			return nil, err
		}
		if docNew {
			stats.DocumentsNew++
		} else {
			stats.DocumentsUpdated++
		}

		documentId := identity.DocumentID(docInput.SourceUrl)
		chunkIdByOrdinal := make(map[int]string, len(docInput.Chunks))

		for ci := range docInput.Chunks {
			chunkInput := &docInput.Chunks[ci]

			textHash := identity.TextHash(chunkInput.Text)
			chunkId := identity.ChunkID(documentId, chunkInput.Ordinal, textHash)
			chunkIdByOrdinal[chunkInput.Ordinal] = chunkId

			locator := entity.Locator{
				PageFrom: chunkInput.Locator.PageFrom,
				PageTo:   chunkInput.Locator.PageTo,
				CharFrom: chunkInput.Locator.CharFrom,
				CharTo:   chunkInput.Locator.CharTo,
				Selector: chunkInput.Locator.Selector,
			}

			// Fail closed: no chunk enters the corpus without a content
			// hash and a complete page range. Stats written so far stay
			// on the run because the upserts stay too.
			if chunkInput.SnapshotHashSha256 == "" || !locator.HasPageRange() {
				run.Stats = run.Stats.Add(stats)
				if updErr := uow.IngestionRunRepository().Update(ctx, run); updErr != nil {
					return nil, updErr
				}
				return &dto.IngestBatchResponse{
					Ok:      false,
					Error:   ErrCodeMissingCitationProof,
					ChunkId: chunkId,
					RunId:   req.RunId,
					Stats:   run.Stats,
				}, nil
			}

			citationId := identity.CitationID(chunkId, chunkInput.SnapshotHashSha256, locator.CanonicalJSON())

			// Citation before chunk: a stored chunk always has its proof
			// row already present.
			if err := s.upsertCitation(ctx, uow, tenantId, req.CorpusVersion, documentId, chunkId, citationId, chunkInput, locator); err != nil {
				return nil, err
			}
			stats.CitationsWritten++

			var parentChunkId *string
			if chunkInput.ParentOrdinal != nil {
				if pid, ok := chunkIdByOrdinal[*chunkInput.ParentOrdinal]; ok {
					parentChunkId = &pid
				}
			}
			if err := s.upsertChunk(ctx, uow, tenantId, req.CorpusVersion, documentId, chunkId, citationId, textHash, parentChunkId, docInput, chunkInput); err != nil {
				return nil, err
			}
			stats.ChunksWritten++
		}
	}

	run.Stats = run.Stats.Add(stats)
	if err := uow.IngestionRunRepository().Update(ctx, run); err != nil {
		return nil, err
	}

	s.triggerIndexSweep(ctx, tenantId)

	return &dto.IngestBatchResponse{
		Ok:    true,
		RunId: req.RunId,
		Stats: run.Stats,
	}, nil
}

func (s *ingestionService) upsertDocument(ctx context.Context, uow unitofwork.UnitOfWork, tenantId, corpusVersion string, input *dto.DocumentInput) (bool, error) {
	documentId := identity.DocumentID(input.SourceUrl)

	existing, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByDocumentId{DocumentId: documentId},
	)
	if err != nil {
		return false, err
	}

	status := input.Status
	if status == "" {
		status = entity.DocumentStatusActive
	}

	now := time.Now()
	if existing == nil {
		doc := &entity.Document{
			Id:                   uuid.New(),
			TenantId:             tenantId,
			DocumentId:           documentId,
			SourceName:           input.SourceName,
			SourceUrl:            input.SourceUrl,
			SourceTrustLevel:     input.SourceTrustLevel,
			Jurisdiction:         input.Jurisdiction,
			InstrumentType:       input.InstrumentType,
			Title:                input.Title,
			Language:             input.Language,
			EffectiveFrom:        input.EffectiveFrom,
			EffectiveTo:          input.EffectiveTo,
			ContentHashSha256:    input.ContentHashSha256,
			SnapshotPointer:      input.SnapshotPointer,
			Mime:                 input.Mime,
			SizeBytes:            input.SizeBytes,
			CorpusVersion:        corpusVersion,
			Status:               status,
			SupersedesDocumentId: input.SupersedesDocumentId,
			CreatedAt:            now,
		}
		return true, uow.DocumentRepository().Create(ctx, doc)
	}

	existing.SourceName = input.SourceName
	existing.SourceTrustLevel = input.SourceTrustLevel
	existing.Jurisdiction = input.Jurisdiction
	existing.InstrumentType = input.InstrumentType
	existing.Title = input.Title
	existing.Language = input.Language
	existing.EffectiveFrom = input.EffectiveFrom
	existing.EffectiveTo = input.EffectiveTo
	existing.ContentHashSha256 = input.ContentHashSha256
	existing.SnapshotPointer = input.SnapshotPointer
	existing.Mime = input.Mime
	existing.SizeBytes = input.SizeBytes
	existing.CorpusVersion = corpusVersion
	existing.Status = status
	existing.SupersedesDocumentId = input.SupersedesDocumentId
	existing.UpdatedAt = &now
	return false, uow.DocumentRepository().Update(ctx, existing)
}

func (s *ingestionService) upsertCitation(ctx context.Context, uow unitofwork.UnitOfWork, tenantId, corpusVersion, documentId, chunkId, citationId string, input *dto.ChunkInput, locator entity.Locator) error {
	existing, err := uow.CitationRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByCitationId{CitationId: citationId},
	)
	if err != nil {
		return err
	}

	if existing == nil {
		citation := &entity.Citation{
			Id:                 uuid.New(),
			TenantId:           tenantId,
			CitationId:         citationId,
			DocumentId:         documentId,
			ChunkId:            chunkId,
			CorpusVersion:      corpusVersion,
			SnapshotPointer:    input.SnapshotPointer,
			SnapshotHashSha256: input.SnapshotHashSha256,
			Locator:            locator,
			CreatedAt:          time.Now(),
		}
		return uow.CitationRepository().Create(ctx, citation)
	}

	existing.DocumentId = documentId
	existing.ChunkId = chunkId
	existing.CorpusVersion = corpusVersion
	existing.SnapshotPointer = input.SnapshotPointer
	existing.SnapshotHashSha256 = input.SnapshotHashSha256
	existing.Locator = locator
	return uow.CitationRepository().Update(ctx, existing)
}

func (s *ingestionService) upsertChunk(ctx context.Context, uow unitofwork.UnitOfWork, tenantId, corpusVersion, documentId, chunkId, citationId, textHash string, parentChunkId *string, docInput *dto.DocumentInput, input *dto.ChunkInput) error {
	existing, err := uow.ChunkRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByChunkId{ChunkId: chunkId},
	)
	if err != nil {
		return err
	}

	language := input.Language
	if language == "" {
		language = docInput.Language
	}
	trustLevel := input.TrustLevel
	if trustLevel == "" {
		trustLevel = docInput.SourceTrustLevel
	}
	docStatus := docInput.Status
	if docStatus == "" {
		docStatus = entity.DocumentStatusActive
	}
	var sourceTrustLevel *string
	if docInput.SourceTrustLevel != "" {
		sourceTrustLevel = &docInput.SourceTrustLevel
	}

	now := time.Now()
	if existing == nil {
		chunk := &entity.Chunk{
			Id:               uuid.New(),
			TenantId:         tenantId,
			ChunkId:          chunkId,
			DocumentId:       documentId,
			ParentChunkId:    parentChunkId,
			Ordinal:          input.Ordinal,
			SectionPath:      input.SectionPath,
			ArticleNo:        input.ArticleNo,
			ParagraphNo:      input.ParagraphNo,
			PointNo:          input.PointNo,
			TableId:          input.TableId,
			Text:             input.Text,
			TextHashSha256:   textHash,
			Language:         language,
			Jurisdiction:     docInput.Jurisdiction,
			InstrumentType:   docInput.InstrumentType,
			TrustLevel:       trustLevel,
			SourceTrustLevel: sourceTrustLevel,
			DocStatus:        docStatus,
			EffectiveFrom:    docInput.EffectiveFrom,
			EffectiveTo:      docInput.EffectiveTo,
			CitationId:       citationId,
			CorpusVersion:    corpusVersion,
			IndexPending:     true,
			CreatedAt:        now,
		}
		return uow.ChunkRepository().Create(ctx, chunk)
	}

	existing.ParentChunkId = parentChunkId
	existing.SectionPath = input.SectionPath
	existing.ArticleNo = input.ArticleNo
	existing.ParagraphNo = input.ParagraphNo
	existing.PointNo = input.PointNo
	existing.TableId = input.TableId
	existing.Text = input.Text
	existing.TextHashSha256 = textHash
	existing.Language = language
	existing.Jurisdiction = docInput.Jurisdiction
	existing.InstrumentType = docInput.InstrumentType
	existing.TrustLevel = trustLevel
	existing.SourceTrustLevel = sourceTrustLevel
	existing.DocStatus = docStatus
	existing.EffectiveFrom = docInput.EffectiveFrom
	existing.EffectiveTo = docInput.EffectiveTo
	existing.CitationId = citationId
	existing.CorpusVersion = corpusVersion
	// Re-ingested chunks always go back through the indexing sweep.
	existing.IndexPending = true
	existing.IndexedAt = nil
	existing.UpdatedAt = &now
	return uow.ChunkRepository().Update(ctx, existing)
}

func (s *ingestionService) UpsertReport(ctx context.Context, tenantId string, req *dto.UpsertReportRequest) (*dto.ReportSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.IngestionReportRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByCorpusVersion{CorpusVersion: req.CorpusVersion},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing == nil {
		existing = &entity.IngestionReport{
			Id:            uuid.New(),
			TenantId:      tenantId,
			CorpusVersion: req.CorpusVersion,
			SourceArchive: req.SourceArchive,
			Counts:        req.Counts,
			CreatedAt:     now,
		}
		if err := uow.IngestionReportRepository().Create(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		existing.SourceArchive = req.SourceArchive
		existing.Counts = req.Counts
		existing.CreatedAt = now
		if err := uow.IngestionReportRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	s.reportCache.Delete(tenantId)

	summary := reportSummary(existing)
	return &summary, nil
}

func (s *ingestionService) GetReport(ctx context.Context, tenantId, corpusVersion string) (*dto.ReportSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.IngestionReportRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByCorpusVersion{CorpusVersion: corpusVersion},
	)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil // Not found
	}

	summary := reportSummary(report)
	return &summary, nil
}

func (s *ingestionService) ListRecentReports(ctx context.Context, tenantId string, limit int) ([]dto.ReportSummary, error) {
	if limit < minReportsLimit {
		limit = minReportsLimit
	}
	if limit > maxReportsLimit {
		limit = maxReportsLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reports, err := uow.IngestionReportRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ReportSummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, reportSummary(report))
	}
	return summaries, nil
}

// CountsByTenant serves corpus size from the report projection; it never
// counts the documents, chunks or citations tables directly.
func (s *ingestionService) CountsByTenant(ctx context.Context, tenantId string) (*dto.CountsByTenantResponse, error) {
	reports, err := s.ListRecentReports(ctx, tenantId, maxReportsLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.CountsByTenantResponse{
		TenantId: tenantId,
		Source:   "none",
		Reports:  len(reports),
	}
	if len(reports) > 0 {
		resp.Counts = reports[0].Counts
		resp.Source = "ingestion_reports"
	}
	return resp, nil
}

func (s *ingestionService) ReportDiagnostics(ctx context.Context, tenantId string) ([]dto.ReportSummary, error) {
	if cached, found := s.reportCache.Get(tenantId); found {
		return cached.([]dto.ReportSummary), nil
	}

	summaries, err := s.ListRecentReports(ctx, tenantId, maxReportsLimit)
	if err != nil {
		return nil, err
	}

	s.reportCache.Set(tenantId, summaries, cache.DefaultExpiration)
	return summaries, nil
}

// triggerIndexSweep asks the internal bus consumer to pick up the chunks
// this batch left pending. Delivery is best effort.
func (s *ingestionService) triggerIndexSweep(ctx context.Context, tenantId string) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishIndexSweepMessage{
		TenantId: tenantId,
		Limit:    sweepBatchLimit,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("IngestionService", "Failed to publish index sweep trigger", map[string]interface{}{"error": err.Error()})
	}
}

func (s *ingestionService) emitRunEvent(ctx context.Context, eventType string, run *entity.IngestionRun) {
	summary := runSummary(run)

	if s.runEvents != nil {
		s.runEvents.PublishRunEvent(ctx, run.TenantId, eventType, summary)
	}

	// Domain event on the bus is auxiliary; a down broker never fails a run.
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"tenant_id":      run.TenantId,
				"run_id":         run.RunId,
				"source_id":      run.SourceId,
				"corpus_version": run.CorpusVersion,
				"status":         run.Status,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("IngestionService", "Failed to publish run event", map[string]interface{}{"error": err.Error(), "type": eventType})
		}
	}
}

func runSummary(run *entity.IngestionRun) dto.RunSummary {
	return dto.RunSummary{
		RunId:         run.RunId,
		SourceId:      run.SourceId,
		CorpusVersion: run.CorpusVersion,
		Status:        run.Status,
		Error:         run.Error,
		Stats:         run.Stats,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
	}
}

func reportSummary(report *entity.IngestionReport) dto.ReportSummary {
	return dto.ReportSummary{
		CorpusVersion: report.CorpusVersion,
		SourceArchive: report.SourceArchive,
		Counts:        report.Counts,
		CreatedAt:     report.CreatedAt,
	}
}
