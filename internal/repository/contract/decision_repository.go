package contract

import (
	"context"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
)

// DecisionRepository is append-only: decisions are immutable outcome
// records, so there is no Update.
type DecisionRepository interface {
	Create(ctx context.Context, decision *entity.Decision) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Decision, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Decision, error)
}

type EvidenceBundleRepository interface {
	Create(ctx context.Context, bundle *entity.EvidenceBundle) error
	Update(ctx context.Context, bundle *entity.EvidenceBundle) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EvidenceBundle, error)
}
