package service

import (
	"context"
	"time"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITenantService interface {
	GetSettings(ctx context.Context, tenantId string) (*dto.TenantSettingsResponse, error)
	SetActiveCorpus(ctx context.Context, tenantId string, req *dto.SetActiveCorpusRequest) (*dto.TenantSettingsResponse, error)

	// ActiveSettings is the read the serving paths do at the start of
	// every call. It always goes to the store; the active corpus version
	// is never cached.
	ActiveSettings(ctx context.Context, tenantId string) (*entity.TenantSettings, error)
}

type tenantService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTenantService(uowFactory unitofwork.RepositoryFactory) ITenantService {
	return &tenantService{uowFactory: uowFactory}
}

func (s *tenantService) ActiveSettings(ctx context.Context, tenantId string) (*entity.TenantSettings, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.TenantSettingsRepository().FindOne(ctx, specification.ByTenant{TenantId: tenantId})
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return entity.DefaultTenantSettings(tenantId), nil
	}
	return settings, nil
}

func (s *tenantService) GetSettings(ctx context.Context, tenantId string) (*dto.TenantSettingsResponse, error) {
	settings, err := s.ActiveSettings(ctx, tenantId)
	if err != nil {
		return nil, err
	}

	resp := &dto.TenantSettingsResponse{
		TenantId:             settings.TenantId,
		ActiveCorpusVersion:  settings.ActiveCorpusVersion,
		AllowFallbackToOlder: settings.AllowFallbackToOlder,
	}
	if !settings.UpdatedAt.IsZero() {
		updatedAt := settings.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp, nil
}

func (s *tenantService) SetActiveCorpus(ctx context.Context, tenantId string, req *dto.SetActiveCorpusRequest) (*dto.TenantSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.TenantSettingsRepository().FindOne(ctx, specification.ByTenant{TenantId: tenantId})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if settings == nil {
		settings = &entity.TenantSettings{
			Id:                  uuid.New(),
			TenantId:            tenantId,
			ActiveCorpusVersion: req.ActiveCorpusVersion,
			UpdatedAt:           now,
		}
		if req.AllowFallbackToOlder != nil {
			settings.AllowFallbackToOlder = *req.AllowFallbackToOlder
		}
		if err := uow.TenantSettingsRepository().Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		settings.ActiveCorpusVersion = req.ActiveCorpusVersion
		if req.AllowFallbackToOlder != nil {
			settings.AllowFallbackToOlder = *req.AllowFallbackToOlder
		}
		settings.UpdatedAt = now
		if err := uow.TenantSettingsRepository().Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return &dto.TenantSettingsResponse{
		TenantId:             settings.TenantId,
		ActiveCorpusVersion:  settings.ActiveCorpusVersion,
		AllowFallbackToOlder: settings.AllowFallbackToOlder,
		UpdatedAt:            &settings.UpdatedAt,
	}, nil
}
