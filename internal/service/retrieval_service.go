package service

import (
	"context"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/pkg/logger"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/internal/repository/unitofwork"
	"customs-evidence-be/pkg/evidence/query"
	"customs-evidence-be/pkg/evidence/rank"
)

const (
	// Per-variant and whole-call caps on raw hits pulled from the store.
	perVariantCap = 18
	globalHitCap  = 120

	// How many report summaries ride along on expected-empty outcomes.
	maxDiagnosticsReports = 12
)

type IRetrievalService interface {
	RetrieveEvidence(ctx context.Context, tenantId string, req *dto.RetrieveEvidenceRequest) (*dto.RetrieveEvidenceResponse, error)
	HydrateChunks(ctx context.Context, tenantId string, req *dto.HydrateRequest) (*dto.HydrateResponse, error)
}

type retrievalService struct {
	uowFactory       unitofwork.RepositoryFactory
	tenantService    ITenantService
	ingestionService IIngestionService
	logger           logger.ILogger
}

func NewRetrievalService(
	uowFactory unitofwork.RepositoryFactory,
	tenantService ITenantService,
	ingestionService IIngestionService,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		uowFactory:       uowFactory,
		tenantService:    tenantService,
		ingestionService: ingestionService,
		logger:           log,
	}
}

// RetrieveEvidence runs the full serving pipeline: active-corpus read,
// query expansion, one bounded search pass per variant, rank and
// diversification, hydration, and the citation-proof filter. Expected-empty
// outcomes come back as ok:false values with diagnostics, never as errors.
func (s *retrievalService) RetrieveEvidence(ctx context.Context, tenantId string, req *dto.RetrieveEvidenceRequest) (*dto.RetrieveEvidenceResponse, error) {
	settings, err := s.tenantService.ActiveSettings(ctx, tenantId)
	if err != nil {
		return nil, err
	}
	active := settings.ActiveCorpusVersion

	normalized := query.Normalize(req.Q)
	if normalized == "" {
		return &dto.RetrieveEvidenceResponse{
			Ok:                  false,
			Reason:              ReasonEmptyQuery,
			ActiveCorpusVersion: active,
			Results:             []dto.RetrievalResult{},
			Diagnostics:         s.diagnostics(ctx, tenantId),
		}, nil
	}

	variants := query.Expand(req.Q)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := s.searchSpecs(tenantId, active, req.Filters)

	rawHits, err := gatherHits(variants, globalHitCap, func(variant string) ([]*entity.Chunk, error) {
		return uow.ChunkRepository().Search(ctx, variant, perVariantCap, specs...)
	})
	if err != nil {
		return nil, err
	}

	if len(rawHits) == 0 {
		return &dto.RetrieveEvidenceResponse{
			Ok:                  false,
			Reason:              ReasonNoHits,
			ActiveCorpusVersion: active,
			QueryVariants:       variants,
			Results:             []dto.RetrievalResult{},
			Diagnostics:         s.diagnostics(ctx, tenantId),
		}, nil
	}

	scored := rank.ScoreAndDedup(rawHits, normalized)
	limit := rank.ClampLimit(req.Limit)
	selected := rank.Diversify(scored, limit)

	scoreByChunk := make(map[string]int, len(scored))
	for _, sc := range scored {
		scoreByChunk[sc.Hit.ChunkId] = sc.Score
	}

	hydrated, err := s.hydrateMany(ctx, uow, tenantId, selected, req.IncludeParent, true, active)
	if err != nil {
		return nil, err
	}

	// Nothing without complete citation proof leaves the service.
	results := make([]dto.RetrievalResult, 0, len(hydrated))
	for _, result := range hydrated {
		if result.Citation.SnapshotHashSha256 == "" || !result.Citation.Locator.HasPageRange() {
			continue
		}
		result.Score = scoreByChunk[result.Chunk.ChunkId]
		results = append(results, result)
	}

	if len(results) == 0 {
		return &dto.RetrieveEvidenceResponse{
			Ok:                  false,
			Reason:              ReasonNoCitableEvidence,
			ActiveCorpusVersion: active,
			QueryVariants:       variants,
			Results:             []dto.RetrievalResult{},
			Diagnostics:         s.diagnostics(ctx, tenantId),
		}, nil
	}

	return &dto.RetrieveEvidenceResponse{
		Ok:                  true,
		ActiveCorpusVersion: active,
		QueryVariants:       variants,
		Results:             results,
	}, nil
}

// gatherHits runs one search pass per variant and accumulates the raw hits.
// The cap stops further passes but keeps the whole batch that crossed it,
// so a variant's trailing hits still reach ranking.
func gatherHits(variants []string, globalCap int, search func(variant string) ([]*entity.Chunk, error)) ([]rank.RawHit, error) {
	rawHits := make([]rank.RawHit, 0, globalCap)
	for _, variant := range variants {
		chunks, err := search(variant)
		if err != nil {
			return nil, err
		}
		for _, chunk := range chunks {
			rawHits = append(rawHits, rank.RawHit{
				ChunkId:    chunk.ChunkId,
				DocumentId: chunk.DocumentId,
				Text:       chunk.Text,
			})
		}
		if len(rawHits) >= globalCap {
			break
		}
	}
	return rawHits, nil
}

func (s *retrievalService) HydrateChunks(ctx context.Context, tenantId string, req *dto.HydrateRequest) (*dto.HydrateResponse, error) {
	settings, err := s.tenantService.ActiveSettings(ctx, tenantId)
	if err != nil {
		return nil, err
	}
	active := settings.ActiveCorpusVersion

	enforce := true
	if req.EnforceActiveCorpus != nil {
		enforce = *req.EnforceActiveCorpus
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	results, err := s.hydrateMany(ctx, uow, tenantId, req.ChunkIds, req.IncludeParent, enforce, active)
	if err != nil {
		return nil, err
	}

	return &dto.HydrateResponse{
		ActiveCorpusVersion: active,
		Results:             results,
	}, nil
}

// hydrateMany resolves chunks with their citation, document and optional
// parent chunk. Unknown chunk ids are skipped; with enforcement on, a
// resolved chunk or parent outside the active corpus is a hard failure.
func (s *retrievalService) hydrateMany(ctx context.Context, uow unitofwork.UnitOfWork, tenantId string, chunkIds []string, includeParent, enforce bool, active string) ([]dto.RetrievalResult, error) {
	results := make([]dto.RetrievalResult, 0, len(chunkIds))

	for _, chunkId := range chunkIds {
		chunk, err := uow.ChunkRepository().FindOne(ctx,
			specification.ByTenant{TenantId: tenantId},
			specification.ByChunkId{ChunkId: chunkId},
		)
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			continue
		}

		if enforce && chunk.CorpusVersion != active {
			return nil, &CorpusMismatchError{
				ChunkId:       chunk.ChunkId,
				ChunkVersion:  chunk.CorpusVersion,
				ActiveVersion: active,
			}
		}

		citation, err := uow.CitationRepository().FindOne(ctx,
			specification.ByTenant{TenantId: tenantId},
			specification.ByCitationId{CitationId: chunk.CitationId},
		)
		if err != nil {
			return nil, err
		}
		if citation == nil {
			// A chunk without its proof row is corrupt; leave it out.
			s.logger.Warn("RetrievalService", "Chunk has no citation row", map[string]interface{}{
				"tenant_id": tenantId,
				"chunk_id":  chunk.ChunkId,
			})
			continue
		}

		result := dto.RetrievalResult{
			Chunk:    chunkView(chunk),
			Citation: citationView(citation),
		}

		document, err := uow.DocumentRepository().FindOne(ctx,
			specification.ByTenant{TenantId: tenantId},
			specification.ByDocumentId{DocumentId: chunk.DocumentId},
		)
		if err != nil {
			return nil, err
		}
		if document != nil {
			view := documentView(document)
			result.Document = &view
		}

		if includeParent && chunk.ParentChunkId != nil {
			parent, err := uow.ChunkRepository().FindOne(ctx,
				specification.ByTenant{TenantId: tenantId},
				specification.ByChunkId{ChunkId: *chunk.ParentChunkId},
			)
			if err != nil {
				return nil, err
			}
			if parent != nil {
				if enforce && parent.CorpusVersion != active {
					return nil, &CorpusMismatchError{
						ChunkId:       parent.ChunkId,
						ChunkVersion:  parent.CorpusVersion,
						ActiveVersion: active,
					}
				}
				view := chunkView(parent)
				result.Parent = &view
			}
		}

		results = append(results, result)
	}

	return results, nil
}

func (s *retrievalService) searchSpecs(tenantId, active string, filters *dto.RetrievalFilters) []specification.Specification {
	specs := []specification.Specification{
		specification.ByTenant{TenantId: tenantId},
		specification.ByCorpusVersion{CorpusVersion: active},
	}
	if filters == nil {
		return specs
	}
	if filters.Jurisdiction != nil {
		specs = append(specs, specification.Filter("jurisdiction", *filters.Jurisdiction))
	}
	if filters.InstrumentType != nil {
		specs = append(specs, specification.Filter("instrument_type", *filters.InstrumentType))
	}
	if filters.Language != nil {
		specs = append(specs, specification.Filter("language", *filters.Language))
	}
	if filters.TrustLevel != nil {
		specs = append(specs, specification.Filter("trust_level", *filters.TrustLevel))
	}
	return specs
}

func (s *retrievalService) diagnostics(ctx context.Context, tenantId string) *dto.RetrievalDiagnostics {
	reports, err := s.ingestionService.ReportDiagnostics(ctx, tenantId)
	if err != nil {
		s.logger.Warn("RetrievalService", "Failed to load report diagnostics", map[string]interface{}{"error": err.Error()})
		reports = []dto.ReportSummary{}
	}
	if len(reports) > maxDiagnosticsReports {
		reports = reports[:maxDiagnosticsReports]
	}
	return &dto.RetrievalDiagnostics{IngestionReports: reports}
}

func chunkView(c *entity.Chunk) dto.ChunkView {
	return dto.ChunkView{
		ChunkId:        c.ChunkId,
		DocumentId:     c.DocumentId,
		ParentChunkId:  c.ParentChunkId,
		Ordinal:        c.Ordinal,
		SectionPath:    c.SectionPath,
		ArticleNo:      c.ArticleNo,
		ParagraphNo:    c.ParagraphNo,
		PointNo:        c.PointNo,
		TableId:        c.TableId,
		Text:           c.Text,
		TextHashSha256: c.TextHashSha256,
		Language:       c.Language,
		Jurisdiction:   c.Jurisdiction,
		InstrumentType: c.InstrumentType,
		TrustLevel:     c.TrustLevel,
		DocStatus:      c.DocStatus,
		CorpusVersion:  c.CorpusVersion,
		CitationId:     c.CitationId,
		IndexPending:   c.IndexPending,
		IndexedAt:      c.IndexedAt,
	}
}

func documentView(d *entity.Document) dto.DocumentView {
	return dto.DocumentView{
		DocumentId:       d.DocumentId,
		SourceName:       d.SourceName,
		SourceUrl:        d.SourceUrl,
		SourceTrustLevel: d.SourceTrustLevel,
		Jurisdiction:     d.Jurisdiction,
		InstrumentType:   d.InstrumentType,
		Title:            d.Title,
		Language:         d.Language,
		EffectiveFrom:    d.EffectiveFrom,
		EffectiveTo:      d.EffectiveTo,
		SnapshotPointer:  d.SnapshotPointer,
		CorpusVersion:    d.CorpusVersion,
		Status:           d.Status,
	}
}
