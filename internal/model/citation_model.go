package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Citation struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId           string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_citations_tenant_citation,priority:1"`
	CitationId         string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_citations_tenant_citation,priority:2"`
	DocumentId         string         `gorm:"type:varchar(32);not null;index"`
	ChunkId            string         `gorm:"type:varchar(32);not null;index"`
	CorpusVersion      string         `gorm:"type:varchar(64);not null;index"`
	SnapshotPointer    string         `gorm:"type:text;not null"`
	SnapshotHashSha256 string         `gorm:"type:char(64);not null"`
	Locator            datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
}

func (Citation) TableName() string {
	return "citations"
}
