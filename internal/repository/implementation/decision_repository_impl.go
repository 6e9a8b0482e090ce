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

type DecisionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DecisionMapper
}

func NewDecisionRepository(db *gorm.DB) contract.DecisionRepository {
	return &DecisionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDecisionMapper(),
	}
}

func (r *DecisionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DecisionRepositoryImpl) Create(ctx context.Context, decision *entity.Decision) error {
	m := r.mapper.ToModel(decision)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*decision = *r.mapper.ToEntity(m)
	return nil
}

func (r *DecisionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Decision, error) {
	var m model.Decision
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DecisionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Decision, error) {
	var models []*model.Decision
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Decision, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

type EvidenceBundleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EvidenceBundleMapper
}

func NewEvidenceBundleRepository(db *gorm.DB) contract.EvidenceBundleRepository {
	return &EvidenceBundleRepositoryImpl{
		db:     db,
		mapper: mapper.NewEvidenceBundleMapper(),
	}
}

func (r *EvidenceBundleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EvidenceBundleRepositoryImpl) Create(ctx context.Context, bundle *entity.EvidenceBundle) error {
	m := r.mapper.ToModel(bundle)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*bundle = *r.mapper.ToEntity(m)
	return nil
}

func (r *EvidenceBundleRepositoryImpl) Update(ctx context.Context, bundle *entity.EvidenceBundle) error {
	m := r.mapper.ToModel(bundle)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*bundle = *r.mapper.ToEntity(m)
	return nil
}

func (r *EvidenceBundleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EvidenceBundle, error) {
	var m model.EvidenceBundle
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
