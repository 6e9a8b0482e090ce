package service

import (
	"context"
	"time"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/pkg/logger"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/internal/repository/unitofwork"
	"customs-evidence-be/pkg/events"
	"customs-evidence-be/pkg/evidence/identity"
	"customs-evidence-be/pkg/evidence/ledger"
	pktNats "customs-evidence-be/pkg/nats"

	"github.com/google/uuid"
)

type IDecisionService interface {
	RecordDecision(ctx context.Context, tenantId string, req *dto.RecordDecisionRequest) (*dto.RecordDecisionResponse, error)
	UpsertBundle(ctx context.Context, tenantId string, req *dto.UpsertBundleRequest) (*dto.UpsertBundleResponse, error)
}

type decisionService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewDecisionService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IDecisionService {
	return &decisionService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// RecordDecision appends one classification outcome to the ledger after
// the full guardrail gauntlet. A FINAL decision must carry citations that
// resolve with complete proof and sit inside its evidence bundle; a STOP
// must carry a reason. Guardrail failures are ok:false values.
func (s *decisionService) RecordDecision(ctx context.Context, tenantId string, req *dto.RecordDecisionRequest) (*dto.RecordDecisionResponse, error) {
	if req.Status == entity.DecisionStatusFinal && len(req.CitationIds) == 0 {
		return &dto.RecordDecisionResponse{Ok: false, Error: ErrCodeMissingCitations}, nil
	}
	if req.Status == entity.DecisionStatusStop && (req.Reason == nil || *req.Reason == "") {
		return &dto.RecordDecisionResponse{Ok: false, Error: ErrCodeMissingReason}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	bundle, err := uow.EvidenceBundleRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByBundleId{BundleId: req.EvidenceBundleId},
	)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return &dto.RecordDecisionResponse{Ok: false, Error: ErrCodeMissingEvidenceBundle}, nil
	}

	if req.Status == entity.DecisionStatusFinal {
		for _, citationId := range req.CitationIds {
			citation, err := uow.CitationRepository().FindOne(ctx,
				specification.ByTenant{TenantId: tenantId},
				specification.ByCitationId{CitationId: citationId},
			)
			if err != nil {
				return nil, err
			}
			if !citation.HasProof() || citation.SnapshotPointer == "" {
				return &dto.RecordDecisionResponse{
					Ok:         false,
					Error:      ErrCodeMissingCitationProof,
					CitationId: citationId,
				}, nil
			}
		}

		// Cross-validation against the bundle only gates FINAL outcomes.
		// A STOP recorded mid-classification may legitimately carry a
		// pointer that diverged from its bundle.
		if !bundle.ContainsAll(req.CitationIds) {
			return &dto.RecordDecisionResponse{Ok: false, Error: ErrCodeEvidenceBundleMismatch}, nil
		}
		if req.SnapshotPointer == "" || req.SnapshotPointer != bundle.SnapshotPointer {
			return &dto.RecordDecisionResponse{Ok: false, Error: ErrCodeSnapshotPointerMismatch}, nil
		}
	}

	hash, err := ledger.Hash(ledger.Projection{
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
	if err != nil {
		return nil, err
	}

	decision := &entity.Decision{
		Id:                 uuid.New(),
		TenantId:           tenantId,
		RequestId:          req.RequestId,
		Time:               req.Time,
		Status:             req.Status,
		Reason:             req.Reason,
		EngineVersion:      req.EngineVersion,
		CorpusVersion:      req.CorpusVersion,
		SnapshotPointer:    req.SnapshotPointer,
		HsCandidate:        req.HsCandidate,
		Confidence:         req.Confidence,
		GirPath:            req.GirPath,
		CitationIds:        req.CitationIds,
		EvidenceBundleId:   req.EvidenceBundleId,
		DecisionHashSha256: hash,
		CreatedAt:          time.Now(),
	}
	if err := uow.DecisionRepository().Create(ctx, decision); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeDecisionRecorded,
			Data: map[string]interface{}{
				"tenant_id":            tenantId,
				"request_id":           req.RequestId,
				"status":               req.Status,
				"decision_hash_sha256": hash,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("DecisionService", "Failed to publish decision event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.RecordDecisionResponse{Ok: true, DecisionHashSha256: hash}, nil
}

func (s *decisionService) UpsertBundle(ctx context.Context, tenantId string, req *dto.UpsertBundleRequest) (*dto.UpsertBundleResponse, error) {
	bundleId := identity.BundleID(req.RequestId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.EvidenceBundleRepository().FindOne(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ByBundleId{BundleId: bundleId},
	)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		bundle := &entity.EvidenceBundle{
			Id:              uuid.New(),
			TenantId:        tenantId,
			BundleId:        bundleId,
			RequestId:       req.RequestId,
			CitationIds:     req.CitationIds,
			SnapshotPointer: req.SnapshotPointer,
			CreatedAt:       time.Now(),
		}
		if err := uow.EvidenceBundleRepository().Create(ctx, bundle); err != nil {
			return nil, err
		}
	} else {
		existing.CitationIds = req.CitationIds
		existing.SnapshotPointer = req.SnapshotPointer
		if err := uow.EvidenceBundleRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	return &dto.UpsertBundleResponse{BundleId: bundleId}, nil
}
