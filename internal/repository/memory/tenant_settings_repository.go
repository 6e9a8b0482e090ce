package memory

import (
	"context"
	"sync"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TenantSettingsRepository struct {
	mu   sync.RWMutex
	rows []entity.TenantSettings
}

func NewTenantSettingsRepository() contract.TenantSettingsRepository {
	return &TenantSettingsRepository{}
}

func settingsGetter(s entity.TenantSettings) getter {
	return func(field string) interface{} {
		switch field {
		case "tenant_id":
			return s.TenantId
		}
		return nil
	}
}

func (r *TenantSettingsRepository) Create(ctx context.Context, settings *entity.TenantSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if settings.Id == uuid.Nil {
		settings.Id = uuid.New()
	}
	r.rows = append(r.rows, *settings)
	return nil
}

func (r *TenantSettingsRepository) Update(ctx context.Context, settings *entity.TenantSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Id == settings.Id {
			r.rows[i] = *settings
			return nil
		}
	}
	r.rows = append(r.rows, *settings)
	return nil
}

func (r *TenantSettingsRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TenantSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := buildQuery(specs...)
	for _, row := range r.rows {
		if q.matches(settingsGetter(row)) {
			out := row
			return &out, nil
		}
	}
	return nil, nil
}
