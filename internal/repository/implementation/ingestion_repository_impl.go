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

type IngestionRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IngestionRunMapper
}

func NewIngestionRunRepository(db *gorm.DB) contract.IngestionRunRepository {
	return &IngestionRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewIngestionRunMapper(),
	}
}

func (r *IngestionRunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IngestionRunRepositoryImpl) Create(ctx context.Context, run *entity.IngestionRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *IngestionRunRepositoryImpl) Update(ctx context.Context, run *entity.IngestionRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *IngestionRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IngestionRun, error) {
	var m model.IngestionRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *IngestionRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IngestionRun, error) {
	var models []*model.IngestionRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type IngestionReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IngestionReportMapper
}

func NewIngestionReportRepository(db *gorm.DB) contract.IngestionReportRepository {
	return &IngestionReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewIngestionReportMapper(),
	}
}

func (r *IngestionReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IngestionReportRepositoryImpl) Create(ctx context.Context, report *entity.IngestionReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *IngestionReportRepositoryImpl) Update(ctx context.Context, report *entity.IngestionReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *IngestionReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IngestionReport, error) {
	var m model.IngestionReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *IngestionReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IngestionReport, error) {
	var models []*model.IngestionReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
