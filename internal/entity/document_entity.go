package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document status lifecycle. Documents are never hard-deleted; a superseded
// or revoked document stays addressable for audit purposes.
const (
	DocumentStatusActive     = "active"
	DocumentStatusSuperseded = "superseded"
	DocumentStatusRevoked    = "revoked"
)

type Document struct {
	Id                   uuid.UUID
	TenantId             string
	DocumentId           string // doc_<hash(source_url)>
	SourceName           string
	SourceUrl            string
	SourceTrustLevel     string
	Jurisdiction         string
	InstrumentType       string
	Title                string
	Language             string
	EffectiveFrom        string
	EffectiveTo          string
	ContentHashSha256    string
	SnapshotPointer      string
	Mime                 string
	SizeBytes            int64
	CorpusVersion        string
	Status               string
	SupersedesDocumentId *string
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}
