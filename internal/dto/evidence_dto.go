package dto

import (
	"time"

	"customs-evidence-be/internal/entity"
)

type ChunkView struct {
	ChunkId        string     `json:"chunk_id"`
	DocumentId     string     `json:"document_id"`
	ParentChunkId  *string    `json:"parent_chunk_id,omitempty"`
	Ordinal        int        `json:"ordinal"`
	SectionPath    []string   `json:"section_path"`
	ArticleNo      *string    `json:"article_no,omitempty"`
	ParagraphNo    *string    `json:"paragraph_no,omitempty"`
	PointNo        *string    `json:"point_no,omitempty"`
	TableId        *string    `json:"table_id,omitempty"`
	Text           string     `json:"text"`
	TextHashSha256 string     `json:"text_hash_sha256"`
	Language       string     `json:"language"`
	Jurisdiction   string     `json:"jurisdiction"`
	InstrumentType string     `json:"instrument_type"`
	TrustLevel     string     `json:"trust_level"`
	DocStatus      string     `json:"doc_status"`
	CorpusVersion  string     `json:"corpus_version"`
	CitationId     string     `json:"citation_id"`
	IndexPending   bool       `json:"index_pending"`
	IndexedAt      *time.Time `json:"indexed_at,omitempty"`
}

type CitationView struct {
	CitationId         string         `json:"citation_id"`
	DocumentId         string         `json:"document_id"`
	ChunkId            string         `json:"chunk_id"`
	CorpusVersion      string         `json:"corpus_version"`
	SnapshotPointer    string         `json:"snapshot_pointer"`
	SnapshotHashSha256 string         `json:"snapshot_hash_sha256"`
	Locator            entity.Locator `json:"locator"`
}

type DocumentView struct {
	DocumentId       string `json:"document_id"`
	SourceName       string `json:"source_name"`
	SourceUrl        string `json:"source_url"`
	SourceTrustLevel string `json:"source_trust_level"`
	Jurisdiction     string `json:"jurisdiction"`
	InstrumentType   string `json:"instrument_type"`
	Title            string `json:"title"`
	Language         string `json:"language"`
	EffectiveFrom    string `json:"effective_from"`
	EffectiveTo      string `json:"effective_to"`
	SnapshotPointer  string `json:"snapshot_pointer"`
	CorpusVersion    string `json:"corpus_version"`
	Status           string `json:"status"`
}

// RetrievalFilters narrow evidence search within the active corpus.
type RetrievalFilters struct {
	Jurisdiction   *string `json:"jurisdiction,omitempty"`
	InstrumentType *string `json:"instrument_type,omitempty"`
	Language       *string `json:"language,omitempty"`
	TrustLevel     *string `json:"trust_level,omitempty"`
}

type RetrieveEvidenceRequest struct {
	Q             string            `json:"q"`
	Limit         int               `json:"limit"`
	Filters       *RetrievalFilters `json:"filters,omitempty"`
	IncludeParent bool              `json:"include_parent"`
}

type RetrievalResult struct {
	Chunk    ChunkView     `json:"chunk"`
	Citation CitationView  `json:"citation"`
	Document *DocumentView `json:"document,omitempty"`
	Parent   *ChunkView    `json:"parent,omitempty"`
	Score    int           `json:"score"`
}

// RetrievalDiagnostics accompany expected-empty outcomes so a caller can
// tell "nothing ingested yet" from "ingested but nothing matched".
type RetrievalDiagnostics struct {
	IngestionReports []ReportSummary `json:"ingestion_reports"`
}

type RetrieveEvidenceResponse struct {
	Ok                  bool                  `json:"ok"`
	Reason              string                `json:"reason,omitempty"`
	ActiveCorpusVersion string                `json:"active_corpus_version"`
	QueryVariants       []string              `json:"query_variants,omitempty"`
	Results             []RetrievalResult     `json:"results"`
	Diagnostics         *RetrievalDiagnostics `json:"diagnostics,omitempty"`
}

type HydrateRequest struct {
	ChunkIds            []string `json:"chunk_ids" validate:"required,min=1"`
	IncludeParent       bool     `json:"include_parent"`
	EnforceActiveCorpus *bool    `json:"enforce_active_corpus,omitempty"`
}

type HydrateResponse struct {
	ActiveCorpusVersion string            `json:"active_corpus_version"`
	Results             []RetrievalResult `json:"results"`
}
