package memory

import (
	"context"
	"sync"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DecisionRepository struct {
	mu   sync.RWMutex
	rows []entity.Decision
}

func NewDecisionRepository() contract.DecisionRepository {
	return &DecisionRepository{}
}

func decisionGetter(d entity.Decision) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return d.TenantId
		case "request_id":
			return d.RequestId
		case "status":
			return d.Status
		case "created_at":
			return d.CreatedAt
		}
		return nil
	}
}

func (r *DecisionRepository) Create(ctx context.Context, decision *entity.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if decision.Id == uuid.Nil {
		decision.Id = uuid.New()
	}
	r.rows = append(r.rows, *decision)
	return nil
}

func (r *DecisionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(decisionGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}

func (r *DecisionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	var matched []entity.Decision
	for _, row := range r.rows {
		if q.matches(decisionGetter(row)) {
			matched = append(matched, row)
		}
	}
	matched = apply(q, matched, decisionGetter)
	out := make([]*entity.Decision, len(matched))
	for i := range matched {
		row := matched[i]
		out[i] = &row
	}
	return out, nil
}

type EvidenceBundleRepository struct {
	mu   sync.RWMutex
	rows []entity.EvidenceBundle
}

func NewEvidenceBundleRepository() contract.EvidenceBundleRepository {
	return &EvidenceBundleRepository{}
}

func bundleGetter(b entity.EvidenceBundle) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return b.TenantId
		case "bundle_id":
			return b.BundleId
		case "request_id":
			return b.RequestId
		}
		return nil
	}
}

func (r *EvidenceBundleRepository) Create(ctx context.Context, bundle *entity.EvidenceBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bundle.Id == uuid.Nil {
		bundle.Id = uuid.New()
	}
	r.rows = append(r.rows, *bundle)
	return nil
}

func (r *EvidenceBundleRepository) Update(ctx context.Context, bundle *entity.EvidenceBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Id == bundle.Id {
			r.rows[i] = *bundle
			return nil
		}
	}
	r.rows = append(r.rows, *bundle)
	return nil
}

func (r *EvidenceBundleRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EvidenceBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(bundleGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}
