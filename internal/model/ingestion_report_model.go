package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IngestionReport struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_reports_tenant_corpus,priority:1"`
	CorpusVersion string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_reports_tenant_corpus,priority:2"`
	SourceArchive string         `gorm:"type:text;not null"`
	Counts        datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time      `gorm:"not null;index"`
}

func (IngestionReport) TableName() string {
	return "ingestion_reports"
}
