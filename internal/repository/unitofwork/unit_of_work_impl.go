package unitofwork

import (
	"context"
	"fmt"

	"customs-evidence-be/internal/repository/contract"
	"customs-evidence-be/internal/repository/implementation"

	"gorm.io/gorm"
)

// UnitOfWorkImpl hands out repositories over one shared *gorm.DB, or over
// an explicit transaction after Begin. Core operations deliberately do NOT
// wrap whole ingestion batches in a transaction: batch writes are
// idempotent upserts and partial completion is an accepted outcome.
type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChunkRepository() contract.ChunkRepository {
	return implementation.NewChunkRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CitationRepository() contract.CitationRepository {
	return implementation.NewCitationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) IngestionRunRepository() contract.IngestionRunRepository {
	return implementation.NewIngestionRunRepository(u.getDB())
}

func (u *UnitOfWorkImpl) IngestionReportRepository() contract.IngestionReportRepository {
	return implementation.NewIngestionReportRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DecisionRepository() contract.DecisionRepository {
	return implementation.NewDecisionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EvidenceBundleRepository() contract.EvidenceBundleRepository {
	return implementation.NewEvidenceBundleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TenantSettingsRepository() contract.TenantSettingsRepository {
	return implementation.NewTenantSettingsRepository(u.getDB())
}
