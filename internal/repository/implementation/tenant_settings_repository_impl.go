package implementation

import (
	"context"
	"errors"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/mapper"
	"customs-evidence-be/internal/model"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TenantSettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TenantSettingsMapper
}

func NewTenantSettingsRepository(db *gorm.DB) contract.TenantSettingsRepository {
	return &TenantSettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewTenantSettingsMapper(),
	}
}

func (r *TenantSettingsRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TenantSettingsRepositoryImpl) Create(ctx context.Context, settings *entity.TenantSettings) error {
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}

func (r *TenantSettingsRepositoryImpl) Update(ctx context.Context, settings *entity.TenantSettings) error {
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}

func (r *TenantSettingsRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TenantSettings, error) {
	var m model.TenantSettings
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
