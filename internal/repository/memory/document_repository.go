package memory

import (
	"context"
	"sync"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository struct {
	mu   sync.RWMutex
	rows []entity.Document
}

func NewDocumentRepository() contract.DocumentRepository {
	return &DocumentRepository{}
}

func documentGetter(d entity.Document) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return d.TenantId
		case "document_id":
			return d.DocumentId
		case "corpus_version":
			return d.CorpusVersion
		case "status":
			return d.Status
		case "created_at":
			return d.CreatedAt
		}
		return nil
	}
}

func (r *DocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if document.Id == uuid.Nil {
		document.Id = uuid.New()
	}
	r.rows = append(r.rows, *document)
	return nil
}

func (r *DocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Id == document.Id {
			r.rows[i] = *document
			return nil
		}
	}
	r.rows = append(r.rows, *document)
	return nil
}

func (r *DocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(documentGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}

func (r *DocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	var matched []entity.Document
	for _, row := range r.rows {
		if q.matches(documentGetter(row)) {
			matched = append(matched, row)
		}
	}
	matched = apply(q, matched, documentGetter)
	out := make([]*entity.Document, len(matched))
	for i := range matched {
		row := matched[i]
		out[i] = &row
	}
	return out, nil
}

func (r *DocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
