package mapper

import (
	"time"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/model"

	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Chunk{
		Id:               c.Id,
		TenantId:         c.TenantId,
		ChunkId:          c.ChunkId,
		DocumentId:       c.DocumentId,
		ParentChunkId:    c.ParentChunkId,
		Ordinal:          c.Ordinal,
		SectionPath:      c.SectionPath,
		ArticleNo:        c.ArticleNo,
		ParagraphNo:      c.ParagraphNo,
		PointNo:          c.PointNo,
		TableId:          c.TableId,
		Text:             c.Text,
		TextHashSha256:   c.TextHashSha256,
		Language:         c.Language,
		Jurisdiction:     c.Jurisdiction,
		InstrumentType:   c.InstrumentType,
		TrustLevel:       c.TrustLevel,
		SourceTrustLevel: c.SourceTrustLevel,
		DocStatus:        c.DocStatus,
		EffectiveFrom:    c.EffectiveFrom,
		EffectiveTo:      c.EffectiveTo,
		CitationId:       c.CitationId,
		CorpusVersion:    c.CorpusVersion,
		IndexPending:     c.IndexPending,
		IndexedAt:        c.IndexedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Chunk{
		Id:               c.Id,
		TenantId:         c.TenantId,
		ChunkId:          c.ChunkId,
		DocumentId:       c.DocumentId,
		ParentChunkId:    c.ParentChunkId,
		Ordinal:          c.Ordinal,
		SectionPath:      datatypes.NewJSONSlice(c.SectionPath),
		ArticleNo:        c.ArticleNo,
		ParagraphNo:      c.ParagraphNo,
		PointNo:          c.PointNo,
		TableId:          c.TableId,
		Text:             c.Text,
		TextHashSha256:   c.TextHashSha256,
		Language:         c.Language,
		Jurisdiction:     c.Jurisdiction,
		InstrumentType:   c.InstrumentType,
		TrustLevel:       c.TrustLevel,
		SourceTrustLevel: c.SourceTrustLevel,
		DocStatus:        c.DocStatus,
		EffectiveFrom:    c.EffectiveFrom,
		EffectiveTo:      c.EffectiveTo,
		CitationId:       c.CitationId,
		CorpusVersion:    c.CorpusVersion,
		IndexPending:     c.IndexPending,
		IndexedAt:        c.IndexedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *ChunkMapper) ToEntities(models []*model.Chunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
