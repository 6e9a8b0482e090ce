package memory

import (
	"context"
	"sync"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"github.com/google/uuid"
)

type IngestionRunRepository struct {
	mu   sync.RWMutex
	rows []entity.IngestionRun
}

func NewIngestionRunRepository() contract.IngestionRunRepository {
	return &IngestionRunRepository{}
}

func runGetter(r entity.IngestionRun) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return r.TenantId
		case "run_id":
			return r.RunId
		case "status":
			return r.Status
		case "started_at":
			return r.StartedAt
		}
		return nil
	}
}

func (r *IngestionRunRepository) Create(ctx context.Context, run *entity.IngestionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run.Id == uuid.Nil {
		run.Id = uuid.New()
	}
	r.rows = append(r.rows, *run)
	return nil
}

func (r *IngestionRunRepository) Update(ctx context.Context, run *entity.IngestionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Id == run.Id {
			r.rows[i] = *run
			return nil
		}
	}
	r.rows = append(r.rows, *run)
	return nil
}

func (r *IngestionRunRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IngestionRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(runGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}

func (r *IngestionRunRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IngestionRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	var matched []entity.IngestionRun
	for _, row := range r.rows {
		if q.matches(runGetter(row)) {
			matched = append(matched, row)
		}
	}
	matched = apply(q, matched, runGetter)
	out := make([]*entity.IngestionRun, len(matched))
	for i := range matched {
		row := matched[i]
		out[i] = &row
	}
	return out, nil
}

type IngestionReportRepository struct {
	mu   sync.RWMutex
	rows []entity.IngestionReport
}

func NewIngestionReportRepository() contract.IngestionReportRepository {
	return &IngestionReportRepository{}
}

func reportGetter(r entity.IngestionReport) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return r.TenantId
		case "corpus_version":
			return r.CorpusVersion
		case "created_at":
			return r.CreatedAt
		}
		return nil
	}
}

func (r *IngestionReportRepository) Create(ctx context.Context, report *entity.IngestionReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.Id == uuid.Nil {
		report.Id = uuid.New()
	}
	r.rows = append(r.rows, *report)
	return nil
}

func (r *IngestionReportRepository) Update(ctx context.Context, report *entity.IngestionReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Id == report.Id {
			r.rows[i] = *report
			return nil
		}
	}
	r.rows = append(r.rows, *report)
	return nil
}

func (r *IngestionReportRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IngestionReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(reportGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}

func (r *IngestionReportRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IngestionReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	var matched []entity.IngestionReport
	for _, row := range r.rows {
		if q.matches(reportGetter(row)) {
			matched = append(matched, row)
		}
	}
	matched = apply(q, matched, reportGetter)
	out := make([]*entity.IngestionReport, len(matched))
	for i := range matched {
		row := matched[i]
		out[i] = &row
	}
	return out, nil
}
