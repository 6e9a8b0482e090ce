package contract

import (
	"context"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
)

type IngestionRunRepository interface {
	Create(ctx context.Context, run *entity.IngestionRun) error
	Update(ctx context.Context, run *entity.IngestionRun) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IngestionRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IngestionRun, error)
}

type IngestionReportRepository interface {
	Create(ctx context.Context, report *entity.IngestionReport) error
	Update(ctx context.Context, report *entity.IngestionReport) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IngestionReport, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IngestionReport, error)
}
