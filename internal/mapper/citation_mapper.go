package mapper

import (
	"encoding/json"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/model"

	"gorm.io/datatypes"
)

type CitationMapper struct{}

func NewCitationMapper() *CitationMapper {
	return &CitationMapper{}
}

func (m *CitationMapper) ToEntity(c *model.Citation) *entity.Citation {
	if c == nil {
		return nil
	}

	var locator entity.Locator
	if len(c.Locator) > 0 {
		// A malformed locator row decodes to the zero value, which fails
		// the proof check downstream rather than leaking bad evidence.
		_ = json.Unmarshal(c.Locator, &locator)
	}

	return &entity.Citation{
		Id:                 c.Id,
		TenantId:           c.TenantId,
		CitationId:         c.CitationId,
		DocumentId:         c.DocumentId,
		ChunkId:            c.ChunkId,
		CorpusVersion:      c.CorpusVersion,
		SnapshotPointer:    c.SnapshotPointer,
		SnapshotHashSha256: c.SnapshotHashSha256,
		Locator:            locator,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *CitationMapper) ToModel(c *entity.Citation) *model.Citation {
	if c == nil {
		return nil
	}

	return &model.Citation{
		Id:                 c.Id,
		TenantId:           c.TenantId,
		CitationId:         c.CitationId,
		DocumentId:         c.DocumentId,
		ChunkId:            c.ChunkId,
		CorpusVersion:      c.CorpusVersion,
		SnapshotPointer:    c.SnapshotPointer,
		SnapshotHashSha256: c.SnapshotHashSha256,
		Locator:            datatypes.JSON(c.Locator.CanonicalJSON()),
		CreatedAt:          c.CreatedAt,
	}
}

func (m *CitationMapper) ToEntities(models []*model.Citation) []*entity.Citation {
	entities := make([]*entity.Citation, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
