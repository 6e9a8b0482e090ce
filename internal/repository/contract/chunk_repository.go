package contract

import (
	"context"
	"time"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
)

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.Chunk) error
	Update(ctx context.Context, chunk *entity.Chunk) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Search runs one bounded, relevance-ordered text search. The returned
	// ordering is the store's own ranking and is treated as opaque.
	Search(ctx context.Context, query string, limit int, specs ...specification.Specification) ([]*entity.Chunk, error)

	// MarkIndexed clears index_pending and stamps indexed_at for one chunk.
	MarkIndexed(ctx context.Context, tenantId, chunkId string, indexedAt time.Time) error
}
