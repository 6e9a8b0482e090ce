package dto

import (
	"time"

	"customs-evidence-be/internal/entity"
)

type StartRunRequest struct {
	RunId         string `json:"run_id" validate:"required"`
	SourceId      string `json:"source_id" validate:"required"`
	CorpusVersion string `json:"corpus_version" validate:"required"`
}

type StartRunResponse struct {
	RunId     string    `json:"run_id"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

type FinishRunResponse struct {
	RunId      string          `json:"run_id"`
	Status     string          `json:"status"`
	Stats      entity.RunStats `json:"stats"`
	FinishedAt time.Time       `json:"finished_at"`
}

type FailRunRequest struct {
	Error string `json:"error" validate:"required"`
}

type RunSummary struct {
	RunId         string          `json:"run_id"`
	SourceId      string          `json:"source_id"`
	CorpusVersion string          `json:"corpus_version"`
	Status        string          `json:"status"`
	Error         *string         `json:"error,omitempty"`
	Stats         entity.RunStats `json:"stats"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    *time.Time      `json:"finished_at,omitempty"`
}

type ListRunsResponse struct {
	Running []RunSummary `json:"running"`
	Success []RunSummary `json:"success"`
	Failed  []RunSummary `json:"failed"`
}

type LocatorInput struct {
	PageFrom *int   `json:"page_from"`
	PageTo   *int   `json:"page_to"`
	CharFrom *int   `json:"char_from,omitempty"`
	CharTo   *int   `json:"char_to,omitempty"`
	Selector string `json:"selector,omitempty"`
}

type ChunkInput struct {
	Ordinal            int          `json:"ordinal"`
	ParentOrdinal      *int         `json:"parent_ordinal,omitempty"`
	SectionPath        []string     `json:"section_path"`
	ArticleNo          *string      `json:"article_no,omitempty"`
	ParagraphNo        *string      `json:"paragraph_no,omitempty"`
	PointNo            *string      `json:"point_no,omitempty"`
	TableId            *string      `json:"table_id,omitempty"`
	Text               string       `json:"text" validate:"required"`
	Language           string       `json:"language"`
	TrustLevel         string       `json:"trust_level"`
	SnapshotPointer    string       `json:"snapshot_pointer" validate:"required"`
	SnapshotHashSha256 string       `json:"snapshot_hash_sha256"`
	Locator            LocatorInput `json:"locator"`
}

type DocumentInput struct {
	SourceName           string       `json:"source_name" validate:"required"`
	SourceUrl            string       `json:"source_url" validate:"required"`
	SourceTrustLevel     string       `json:"source_trust_level"`
	Jurisdiction         string       `json:"jurisdiction"`
	InstrumentType       string       `json:"instrument_type"`
	Title                string       `json:"title"`
	Language             string       `json:"language"`
	EffectiveFrom        string       `json:"effective_from"`
	EffectiveTo          string       `json:"effective_to"`
	ContentHashSha256    string       `json:"content_hash_sha256"`
	SnapshotPointer      string       `json:"snapshot_pointer"`
	Mime                 string       `json:"mime"`
	SizeBytes            int64        `json:"size_bytes"`
	Status               string       `json:"status" validate:"omitempty,oneof=active superseded revoked"`
	SupersedesDocumentId *string      `json:"supersedes_document_id,omitempty"`
	Chunks               []ChunkInput `json:"chunks" validate:"dive"`
}

type IngestBatchRequest struct {
	RunId         string          `json:"run_id" validate:"required"`
	SourceId      string          `json:"source_id" validate:"required"`
	CorpusVersion string          `json:"corpus_version" validate:"required"`
	Documents     []DocumentInput `json:"documents" validate:"required,min=1,dive"`
}

type IngestBatchResponse struct {
	Ok      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	ChunkId string          `json:"chunk_id,omitempty"`
	RunId   string          `json:"run_id"`
	Stats   entity.RunStats `json:"stats"`
}

type IndexSweepRequest struct {
	Limit     int        `json:"limit" validate:"required,min=1,max=500"`
	IndexedAt *time.Time `json:"indexed_at,omitempty"`
}

type IndexedChunkPayload struct {
	ChunkId       string        `json:"chunk_id"`
	DocumentId    string        `json:"document_id"`
	Text          string        `json:"text"`
	SectionPath   []string      `json:"section_path"`
	CorpusVersion string        `json:"corpus_version"`
	Citation      *CitationView `json:"citation"`
}

type IndexSweepResponse struct {
	Ok                  bool                  `json:"ok"`
	Error               string                `json:"error,omitempty"`
	ChunkId             string                `json:"chunk_id,omitempty"`
	Indexed             int                   `json:"indexed"`
	IndexedAt           *time.Time            `json:"indexed_at,omitempty"`
	ActiveCorpusVersion string                `json:"active_corpus_version"`
	Chunks              []IndexedChunkPayload `json:"chunks,omitempty"`
}

type PendingCountResponse struct {
	Count   int64  `json:"count"`
	IsExact bool   `json:"is_exact"`
	Note    string `json:"note,omitempty"`
}

type UpsertReportRequest struct {
	CorpusVersion string              `json:"corpus_version" validate:"required"`
	SourceArchive string              `json:"source_archive" validate:"required"`
	Counts        entity.ReportCounts `json:"counts"`
}

type ReportSummary struct {
	CorpusVersion string              `json:"corpus_version"`
	SourceArchive string              `json:"source_archive"`
	Counts        entity.ReportCounts `json:"counts"`
	CreatedAt     time.Time           `json:"created_at"`
}

// PublishIndexSweepMessage is the internal bus payload that asks the
// consumer to sweep pending chunks for one tenant.
type PublishIndexSweepMessage struct {
	TenantId string `json:"tenant_id"`
	Limit    int    `json:"limit"`
}

type CountsByTenantResponse struct {
	TenantId string              `json:"tenant_id"`
	Counts   entity.ReportCounts `json:"counts"`
	Source   string              `json:"source"`
	Reports  int                 `json:"reports"`
}
