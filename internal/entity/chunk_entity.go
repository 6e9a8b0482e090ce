package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is the unit of retrieval and citation: one segment of a source
// document, pinned to a corpus version and to exactly one citation.
type Chunk struct {
	Id               uuid.UUID
	TenantId         string
	ChunkId          string // chk_<hash(document_id:ordinal:text_hash)>
	DocumentId       string
	ParentChunkId    *string
	Ordinal          int
	SectionPath      []string
	ArticleNo        *string
	ParagraphNo      *string
	PointNo          *string
	TableId          *string
	Text             string
	TextHashSha256   string
	Language         string
	Jurisdiction     string
	InstrumentType   string
	TrustLevel       string
	SourceTrustLevel *string
	DocStatus        string
	EffectiveFrom    string
	EffectiveTo      string
	CitationId       string
	CorpusVersion    string
	IndexPending     bool
	IndexedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
