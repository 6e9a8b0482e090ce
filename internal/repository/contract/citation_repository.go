package contract

import (
	"context"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
)

type CitationRepository interface {
	Create(ctx context.Context, citation *entity.Citation) error
	Update(ctx context.Context, citation *entity.Citation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Citation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Citation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
