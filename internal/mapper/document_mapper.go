package mapper

import (
	"time"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:                   d.Id,
		TenantId:             d.TenantId,
		DocumentId:           d.DocumentId,
		SourceName:           d.SourceName,
		SourceUrl:            d.SourceUrl,
		SourceTrustLevel:     d.SourceTrustLevel,
		Jurisdiction:         d.Jurisdiction,
		InstrumentType:       d.InstrumentType,
		Title:                d.Title,
		Language:             d.Language,
		EffectiveFrom:        d.EffectiveFrom,
		EffectiveTo:          d.EffectiveTo,
		ContentHashSha256:    d.ContentHashSha256,
		SnapshotPointer:      d.SnapshotPointer,
		Mime:                 d.Mime,
		SizeBytes:            d.SizeBytes,
		CorpusVersion:        d.CorpusVersion,
		Status:               d.Status,
		SupersedesDocumentId: d.SupersedesDocumentId,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:                   d.Id,
		TenantId:             d.TenantId,
		DocumentId:           d.DocumentId,
		SourceName:           d.SourceName,
		SourceUrl:            d.SourceUrl,
		SourceTrustLevel:     d.SourceTrustLevel,
		Jurisdiction:         d.Jurisdiction,
		InstrumentType:       d.InstrumentType,
		Title:                d.Title,
		Language:             d.Language,
		EffectiveFrom:        d.EffectiveFrom,
		EffectiveTo:          d.EffectiveTo,
		ContentHashSha256:    d.ContentHashSha256,
		SnapshotPointer:      d.SnapshotPointer,
		Mime:                 d.Mime,
		SizeBytes:            d.SizeBytes,
		CorpusVersion:        d.CorpusVersion,
		Status:               d.Status,
		SupersedesDocumentId: d.SupersedesDocumentId,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(models []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(models))
	for i, d := range models {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
