package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Decision struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId           string                      `gorm:"type:varchar(64);not null;index:idx_decisions_tenant_request,priority:1"`
	RequestId          string                      `gorm:"type:varchar(64);not null;index:idx_decisions_tenant_request,priority:2"`
	Time               string                      `gorm:"type:varchar(40);not null"`
	Status             string                      `gorm:"type:varchar(8);not null"`
	Reason             *string                     `gorm:"type:text"`
	EngineVersion      string                      `gorm:"type:varchar(32);not null"`
	CorpusVersion      string                      `gorm:"type:varchar(64);not null"`
	SnapshotPointer    string                      `gorm:"type:text;not null"`
	HsCandidate        string                      `gorm:"type:varchar(32);not null"`
	Confidence         float64                     `gorm:"not null"`
	GirPath            datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CitationIds        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	EvidenceBundleId   string                      `gorm:"type:varchar(80);not null"`
	DecisionHashSha256 string                      `gorm:"type:char(64);not null"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime"`
}

func (Decision) TableName() string {
	return "decisions"
}

type EvidenceBundle struct {
	Id              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId        string                      `gorm:"type:varchar(64);not null;uniqueIndex:idx_bundles_tenant_bundle,priority:1"`
	BundleId        string                      `gorm:"type:varchar(80);not null;uniqueIndex:idx_bundles_tenant_bundle,priority:2"`
	RequestId       string                      `gorm:"type:varchar(64);not null"`
	CitationIds     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	SnapshotPointer string                      `gorm:"type:text;not null"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime"`
}

func (EvidenceBundle) TableName() string {
	return "evidence_bundles"
}
