package unitofwork

import (
	"context"

	"customs-evidence-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
	CitationRepository() contract.CitationRepository
	IngestionRunRepository() contract.IngestionRunRepository
	IngestionReportRepository() contract.IngestionReportRepository
	DecisionRepository() contract.DecisionRepository
	EvidenceBundleRepository() contract.EvidenceBundleRepository
	TenantSettingsRepository() contract.TenantSettingsRepository
}
