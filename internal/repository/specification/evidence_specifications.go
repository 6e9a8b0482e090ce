package specification

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ByTenant scopes a query to one tenant. Every repository call in the
// serving path starts with this; tenant isolation is a hard boundary.
type ByTenant struct {
	TenantId string
}

func (s ByTenant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_id = ?", s.TenantId)
}

type ByDocumentId struct {
	DocumentId string
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

type ByChunkId struct {
	ChunkId string
}

func (s ByChunkId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunk_id = ?", s.ChunkId)
}

type ByChunkIds struct {
	ChunkIds []string
}

func (s ByChunkIds) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunk_id IN ?", s.ChunkIds)
}

type ByCitationId struct {
	CitationId string
}

func (s ByCitationId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("citation_id = ?", s.CitationId)
}

type ByRunId struct {
	RunId string
}

func (s ByRunId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("run_id = ?", s.RunId)
}

type ByBundleId struct {
	BundleId string
}

func (s ByBundleId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("bundle_id = ?", s.BundleId)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByCorpusVersion struct {
	CorpusVersion string
}

func (s ByCorpusVersion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("corpus_version = ?", s.CorpusVersion)
}

// IndexPendingOnly selects chunks awaiting the indexing sweep.
type IndexPendingOnly struct{}

func (s IndexPendingOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("index_pending = ?", true)
}

// ChunkTextSearch runs Postgres full-text matching over chunk text,
// ordered by ts_rank. This is the explicit substitution for the opaque
// relevance ordering of the original evidence store: token-based matching
// with an ILIKE fallback so compact tariff codes still hit, ranked
// server-side and treated as opaque by everything downstream.
type ChunkTextSearch struct {
	Query string
}

func (s ChunkTextSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where(
			"to_tsvector('simple', text) @@ plainto_tsquery('simple', ?) OR text ILIKE ?",
			s.Query, "%"+s.Query+"%",
		).
		Order(clause.Expr{
			SQL:  "ts_rank(to_tsvector('simple', text), plainto_tsquery('simple', ?)) DESC, chunk_id ASC",
			Vars: []interface{}{s.Query},
		})
}
