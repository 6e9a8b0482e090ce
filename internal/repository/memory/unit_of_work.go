package memory

import (
	"context"

	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/unitofwork"
)

// UnitOfWork over the memory repositories. Begin/Commit/Rollback are
// no-ops: the memory backend exists for tests and local runs, where the
// at-least-once batch semantics of the real store are reproduced exactly
// by not having transactions at all.
type UnitOfWork struct {
	documents *DocumentRepository
	chunks    *ChunkRepository
	citations *CitationRepository
	runs      *IngestionRunRepository
	reports   *IngestionReportRepository
	decisions *DecisionRepository
	bundles   *EvidenceBundleRepository
	settings  *TenantSettingsRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		documents: &DocumentRepository{},
		chunks:    &ChunkRepository{},
		citations: &CitationRepository{},
		runs:      &IngestionRunRepository{},
		reports:   &IngestionReportRepository{},
		decisions: &DecisionRepository{},
		bundles:   &EvidenceBundleRepository{},
		settings:  &TenantSettingsRepository{},
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.documents
}

func (u *UnitOfWork) ChunkRepository() contract.ChunkRepository {
	return u.chunks
}

func (u *UnitOfWork) CitationRepository() contract.CitationRepository {
	return u.citations
}

func (u *UnitOfWork) IngestionRunRepository() contract.IngestionRunRepository {
	return u.runs
}

func (u *UnitOfWork) IngestionReportRepository() contract.IngestionReportRepository {
	return u.reports
}

func (u *UnitOfWork) DecisionRepository() contract.DecisionRepository {
	return u.decisions
}

func (u *UnitOfWork) EvidenceBundleRepository() contract.EvidenceBundleRepository {
	return u.bundles
}

func (u *UnitOfWork) TenantSettingsRepository() contract.TenantSettingsRepository {
	return u.settings
}

// Factory hands the same shared UnitOfWork to every caller, mirroring how
// all requests see one database.
type Factory struct {
	uow *UnitOfWork
}

func NewFactory() *Factory {
	return &Factory{uow: NewUnitOfWork()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}
