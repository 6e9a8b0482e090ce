package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository struct {
	mu   sync.RWMutex
	rows []entity.Chunk
}

func NewChunkRepository() contract.ChunkRepository {
	return &ChunkRepository{}
}

func chunkGetter(c entity.Chunk) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return c.TenantId
		case "chunk_id":
			return c.ChunkId
		case "document_id":
			return c.DocumentId
		case "citation_id":
			return c.CitationId
		case "corpus_version":
			return c.CorpusVersion
		case "index_pending":
			return c.IndexPending
		case "jurisdiction":
			return c.Jurisdiction
		case "instrument_type":
			return c.InstrumentType
		case "language":
			return c.Language
		case "trust_level":
			return c.TrustLevel
		case "ordinal":
			return c.Ordinal
		case "created_at":
			return c.CreatedAt
		}
		return nil
	}
}

func (r *ChunkRepository) Create(ctx context.Context, chunk *entity.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chunk.Id == uuid.Nil {
		chunk.Id = uuid.New()
	}
	r.rows = append(r.rows, *chunk)
	return nil
}

func (r *ChunkRepository) Update(ctx context.Context, chunk *entity.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Id == chunk.Id {
			r.rows[i] = *chunk
			return nil
		}
	}
	r.rows = append(r.rows, *chunk)
	return nil
}

func (r *ChunkRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(chunkGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	var matched []entity.Chunk
	for _, row := range r.rows {
		if q.matches(chunkGetter(row)) {
			matched = append(matched, row)
		}
	}
	matched = apply(q, matched, chunkGetter)
	out := make([]*entity.Chunk, len(matched))
	for i := range matched {
		row := matched[i]
		out[i] = &row
	}
	return out, nil
}

func (r *ChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// Search approximates the store's text relevance with token containment:
// a chunk matches when its text contains every whitespace token of the
// query (case-insensitive). Insertion order stands in for the store's
// opaque relevance ordering, which keeps tests deterministic.
func (r *ChunkRepository) Search(ctx context.Context, query string, limit int, specs ...specification.Specification) ([]*entity.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	tokens := strings.Fields(strings.ToLower(query))

	var out []*entity.Chunk
	for _, row := range r.rows {
		if !q.matches(chunkGetter(row)) {
			continue
		}
		text := strings.ToLower(row.Text)
		hit := len(tokens) > 0
		for _, tok := range tokens {
			if !strings.Contains(text, tok) {
				hit = false
				break
			}
		}
		if !hit {
			continue
		}
		match := row
		out = append(out, &match)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *ChunkRepository) MarkIndexed(ctx context.Context, tenantId, chunkId string, indexedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].TenantId == tenantId && r.rows[i].ChunkId == chunkId {
			t := indexedAt
			r.rows[i].IndexPending = false
			r.rows[i].IndexedAt = &t
		}
	}
	return nil
}
