package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId             string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_documents_tenant_document,priority:1"`
	DocumentId           string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_documents_tenant_document,priority:2"`
	SourceName           string    `gorm:"type:varchar(255);not null"`
	SourceUrl            string    `gorm:"type:text;not null"`
	SourceTrustLevel     string    `gorm:"type:varchar(32);not null"`
	Jurisdiction         string    `gorm:"type:varchar(32);not null;index"`
	InstrumentType       string    `gorm:"type:varchar(64);not null;index"`
	Title                string    `gorm:"type:text;not null"`
	Language             string    `gorm:"type:varchar(16);not null"`
	EffectiveFrom        string    `gorm:"type:varchar(32)"`
	EffectiveTo          string    `gorm:"type:varchar(32)"`
	ContentHashSha256    string    `gorm:"type:char(64);not null"`
	SnapshotPointer      string    `gorm:"type:text;not null"`
	Mime                 string    `gorm:"type:varchar(128)"`
	SizeBytes            int64
	CorpusVersion        string    `gorm:"type:varchar(64);not null;index"`
	Status               string    `gorm:"type:varchar(16);not null;default:'active'"`
	SupersedesDocumentId *string   `gorm:"type:varchar(32)"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
