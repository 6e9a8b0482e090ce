package implementation

import (
	"context"
	"errors"
	"time"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/mapper"
	"customs-evidence-be/internal/model"
	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.Chunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkRepositoryImpl) Update(ctx context.Context, chunk *entity.Chunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	var m model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chunk{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChunkRepositoryImpl) Search(ctx context.Context, query string, limit int, specs ...specification.Specification) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	q := r.applySpecifications(r.db.WithContext(ctx), specs...)
	q = specification.ChunkTextSearch{Query: query}.Apply(q)
	if err := q.Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) MarkIndexed(ctx context.Context, tenantId, chunkId string, indexedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Chunk{}).
		Where("tenant_id = ? AND chunk_id = ?", tenantId, chunkId).
		Updates(map[string]interface{}{
			"index_pending": false,
			"indexed_at":    indexedAt,
		}).Error
}
