package service

import (
	"context"
	"time"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/pkg/logger"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/internal/repository/unitofwork"
)

// maxPendingRead bounds the pending-count read. The count degrades to a
// lower bound past this many rows instead of scanning the whole table.
const maxPendingRead = 5000

type IIndexingService interface {
	IndexPendingChunks(ctx context.Context, tenantId string, req *dto.IndexSweepRequest) (*dto.IndexSweepResponse, error)
	PendingIndexCount(ctx context.Context, tenantId string) (*dto.PendingCountResponse, error)
}

type indexingService struct {
	uowFactory    unitofwork.RepositoryFactory
	tenantService ITenantService
	logger        logger.ILogger
}

func NewIndexingService(
	uowFactory unitofwork.RepositoryFactory,
	tenantService ITenantService,
	log logger.ILogger,
) IIndexingService {
	return &indexingService{
		uowFactory:    uowFactory,
		tenantService: tenantService,
		logger:        log,
	}
}

// IndexPendingChunks sweeps chunks of the tenant's active corpus that are
// waiting for indexing. Every chunk's citation proof is verified before
// anything is marked; one unprovable chunk aborts the whole sweep.
func (s *indexingService) IndexPendingChunks(ctx context.Context, tenantId string, req *dto.IndexSweepRequest) (*dto.IndexSweepResponse, error) {
	settings, err := s.tenantService.ActiveSettings(ctx, tenantId)
	if err != nil {
		return nil, err
	}
	active := settings.ActiveCorpusVersion

	uow := s.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.IndexPendingOnly{},
		specification.ByCorpusVersion{CorpusVersion: active},
		specification.OrderBy{Field: "created_at"},
		specification.Limit{N: req.Limit},
	)
	if err != nil {
		return nil, err
	}

	citations := make(map[string]*entity.Citation, len(chunks))
	for _, chunk := range chunks {
		citation, err := uow.CitationRepository().FindOne(ctx,
			specification.ByTenant{TenantId: tenantId},
			specification.ByCitationId{CitationId: chunk.CitationId},
		)
		if err != nil {
			return nil, err
		}
		if !citation.HasProof() {
			s.logger.Warn("IndexingService", "Sweep aborted on unprovable chunk", map[string]interface{}{
				"tenant_id": tenantId,
				"chunk_id":  chunk.ChunkId,
			})
			return &dto.IndexSweepResponse{
				Ok:                  false,
				Error:               ErrCodeMissingCitationProof,
				ChunkId:             chunk.ChunkId,
				ActiveCorpusVersion: active,
			}, nil
		}
		citations[chunk.ChunkId] = citation
	}

	indexedAt := time.Now()
	if req.IndexedAt != nil {
		indexedAt = *req.IndexedAt
	}

	payloads := make([]dto.IndexedChunkPayload, 0, len(chunks))
	for _, chunk := range chunks {
		if err := uow.ChunkRepository().MarkIndexed(ctx, tenantId, chunk.ChunkId, indexedAt); err != nil {
			return nil, err
		}
		citation := citationView(citations[chunk.ChunkId])
		payloads = append(payloads, dto.IndexedChunkPayload{
			ChunkId:       chunk.ChunkId,
			DocumentId:    chunk.DocumentId,
			Text:          chunk.Text,
			SectionPath:   chunk.SectionPath,
			CorpusVersion: chunk.CorpusVersion,
			Citation:      &citation,
		})
	}

	return &dto.IndexSweepResponse{
		Ok:                  true,
		Indexed:             len(payloads),
		IndexedAt:           &indexedAt,
		ActiveCorpusVersion: active,
		Chunks:              payloads,
	}, nil
}

func (s *indexingService) PendingIndexCount(ctx context.Context, tenantId string) (*dto.PendingCountResponse, error) {
	settings, err := s.tenantService.ActiveSettings(ctx, tenantId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.IndexPendingOnly{},
		specification.ByCorpusVersion{CorpusVersion: settings.ActiveCorpusVersion},
		specification.Limit{N: maxPendingRead},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.PendingCountResponse{
		Count:   int64(len(chunks)),
		IsExact: len(chunks) < maxPendingRead,
	}
	if !resp.IsExact {
		resp.Note = "bounded read reached; the real count may be higher"
	}
	return resp, nil
}

func citationView(c *entity.Citation) dto.CitationView {
	return dto.CitationView{
		CitationId:         c.CitationId,
		DocumentId:         c.DocumentId,
		ChunkId:            c.ChunkId,
		CorpusVersion:      c.CorpusVersion,
		SnapshotPointer:    c.SnapshotPointer,
		SnapshotHashSha256: c.SnapshotHashSha256,
		Locator:            c.Locator,
	}
}
