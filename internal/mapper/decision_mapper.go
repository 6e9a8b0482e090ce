package mapper

import (
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/model"

	"gorm.io/datatypes"
)

type DecisionMapper struct{}

func NewDecisionMapper() *DecisionMapper {
	return &DecisionMapper{}
}

func (m *DecisionMapper) ToEntity(d *model.Decision) *entity.Decision {
	if d == nil {
		return nil
	}

	return &entity.Decision{
		Id:                 d.Id,
		TenantId:           d.TenantId,
		RequestId:          d.RequestId,
		Time:               d.Time,
		Status:             d.Status,
		Reason:             d.Reason,
		EngineVersion:      d.EngineVersion,
		CorpusVersion:      d.CorpusVersion,
		SnapshotPointer:    d.SnapshotPointer,
		HsCandidate:        d.HsCandidate,
		Confidence:         d.Confidence,
		GirPath:            d.GirPath,
		CitationIds:        d.CitationIds,
		EvidenceBundleId:   d.EvidenceBundleId,
		DecisionHashSha256: d.DecisionHashSha256,
		CreatedAt:          d.CreatedAt,
	}
}

func (m *DecisionMapper) ToModel(d *entity.Decision) *model.Decision {
	if d == nil {
		return nil
	}

	return &model.Decision{
		Id:                 d.Id,
		TenantId:           d.TenantId,
		RequestId:          d.RequestId,
		Time:               d.Time,
		Status:             d.Status,
		Reason:             d.Reason,
		EngineVersion:      d.EngineVersion,
		CorpusVersion:      d.CorpusVersion,
		SnapshotPointer:    d.SnapshotPointer,
		HsCandidate:        d.HsCandidate,
		Confidence:         d.Confidence,
		GirPath:            datatypes.NewJSONSlice(d.GirPath),
		CitationIds:        datatypes.NewJSONSlice(d.CitationIds),
		EvidenceBundleId:   d.EvidenceBundleId,
		DecisionHashSha256: d.DecisionHashSha256,
		CreatedAt:          d.CreatedAt,
	}
}

type EvidenceBundleMapper struct{}

func NewEvidenceBundleMapper() *EvidenceBundleMapper {
	return &EvidenceBundleMapper{}
}

func (m *EvidenceBundleMapper) ToEntity(b *model.EvidenceBundle) *entity.EvidenceBundle {
	if b == nil {
		return nil
	}

	return &entity.EvidenceBundle{
		Id:              b.Id,
		TenantId:        b.TenantId,
		BundleId:        b.BundleId,
		RequestId:       b.RequestId,
		CitationIds:     b.CitationIds,
		SnapshotPointer: b.SnapshotPointer,
		CreatedAt:       b.CreatedAt,
	}
}

func (m *EvidenceBundleMapper) ToModel(b *entity.EvidenceBundle) *model.EvidenceBundle {
	if b == nil {
		return nil
	}

	return &model.EvidenceBundle{
		Id:              b.Id,
		TenantId:        b.TenantId,
		BundleId:        b.BundleId,
		RequestId:       b.RequestId,
		CitationIds:     datatypes.NewJSONSlice(b.CitationIds),
		SnapshotPointer: b.SnapshotPointer,
		CreatedAt:       b.CreatedAt,
	}
}
