package contract

import (
	"context"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
)

type TenantSettingsRepository interface {
	Create(ctx context.Context, settings *entity.TenantSettings) error
	Update(ctx context.Context, settings *entity.TenantSettings) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TenantSettings, error)
}
