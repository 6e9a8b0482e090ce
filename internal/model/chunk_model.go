package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Chunk struct {
	Id               uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId         string                      `gorm:"type:varchar(64);not null;uniqueIndex:idx_chunks_tenant_chunk,priority:1;index:idx_chunks_tenant_pending_corpus,priority:1"`
	ChunkId          string                      `gorm:"type:varchar(32);not null;uniqueIndex:idx_chunks_tenant_chunk,priority:2"`
	DocumentId       string                      `gorm:"type:varchar(32);not null;index"`
	ParentChunkId    *string                     `gorm:"type:varchar(32)"`
	Ordinal          int                         `gorm:"not null"`
	SectionPath      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ArticleNo        *string                     `gorm:"type:varchar(32)"`
	ParagraphNo      *string                     `gorm:"type:varchar(32)"`
	PointNo          *string                     `gorm:"type:varchar(32)"`
	TableId          *string                     `gorm:"type:varchar(64)"`
	Text             string                      `gorm:"type:text;not null"`
	TextHashSha256   string                      `gorm:"type:char(64);not null"`
	Language         string                      `gorm:"type:varchar(16);not null;index"`
	Jurisdiction     string                      `gorm:"type:varchar(32);not null;index"`
	InstrumentType   string                      `gorm:"type:varchar(64);not null;index"`
	TrustLevel       string                      `gorm:"type:varchar(32);not null;index"`
	SourceTrustLevel *string                     `gorm:"type:varchar(32)"`
	DocStatus        string                      `gorm:"type:varchar(16);not null"`
	EffectiveFrom    string                      `gorm:"type:varchar(32)"`
	EffectiveTo      string                      `gorm:"type:varchar(32)"`
	CitationId       string                      `gorm:"type:varchar(32);not null"`
	CorpusVersion    string                      `gorm:"type:varchar(64);not null;index:idx_chunks_tenant_pending_corpus,priority:3"`
	IndexPending     bool                        `gorm:"not null;default:true;index:idx_chunks_tenant_pending_corpus,priority:2"`
	IndexedAt        *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}
