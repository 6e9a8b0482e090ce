package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IngestionRun struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_runs_tenant_run,priority:1;index:idx_runs_tenant_status,priority:1"`
	RunId         string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_runs_tenant_run,priority:2"`
	SourceId      string         `gorm:"type:varchar(64);not null"`
	CorpusVersion string         `gorm:"type:varchar(64);not null"`
	Status        string         `gorm:"type:varchar(16);not null;index:idx_runs_tenant_status,priority:2"`
	Error         *string        `gorm:"type:text"`
	Stats         datatypes.JSON `gorm:"type:jsonb;not null"`
	StartedAt     time.Time      `gorm:"not null"`
	FinishedAt    *time.Time
}

func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
