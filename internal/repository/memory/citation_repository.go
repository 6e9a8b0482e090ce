package memory

import (
	"context"
	"sync"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CitationRepository struct {
	mu   sync.RWMutex
	rows []entity.Citation
}

func NewCitationRepository() contract.CitationRepository {
	return &CitationRepository{}
}

func citationGetter(c entity.Citation) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return c.TenantId
		case "citation_id":
			return c.CitationId
		case "chunk_id":
			return c.ChunkId
		case "document_id":
			return c.DocumentId
		case "corpus_version":
			return c.CorpusVersion
		}
		return nil
	}
}

func (r *CitationRepository) Create(ctx context.Context, citation *entity.Citation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if citation.Id == uuid.Nil {
		citation.Id = uuid.New()
	}
	r.rows = append(r.rows, *citation)
	return nil
}

func (r *CitationRepository) Update(ctx context.Context, citation *entity.Citation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Id == citation.Id {
			r.rows[i] = *citation
			return nil
		}
	}
	r.rows = append(r.rows, *citation)
	return nil
}

func (r *CitationRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Citation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(citationGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}

func (r *CitationRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Citation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	var matched []entity.Citation
	for _, row := range r.rows {
		if q.matches(citationGetter(row)) {
			matched = append(matched, row)
		}
	}
	matched = apply(q, matched, citationGetter)
	out := make([]*entity.Citation, len(matched))
	for i := range matched {
		row := matched[i]
		out[i] = &row
	}
	return out, nil
}

func (r *CitationRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
