package mapper

import (
	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/model"
)

type TenantSettingsMapper struct{}

func NewTenantSettingsMapper() *TenantSettingsMapper {
	return &TenantSettingsMapper{}
}

func (m *TenantSettingsMapper) ToEntity(s *model.TenantSettings) *entity.TenantSettings {
	if s == nil {
		return nil
	}

	return &entity.TenantSettings{
		Id:                   s.Id,
		TenantId:             s.TenantId,
		ActiveCorpusVersion:  s.ActiveCorpusVersion,
		AllowFallbackToOlder: s.AllowFallbackToOlder,
		UpdatedAt:            s.UpdatedAt,
	}
}

func (m *TenantSettingsMapper) ToModel(s *entity.TenantSettings) *model.TenantSettings {
	if s == nil {
		return nil
	}

	return &model.TenantSettings{
		Id:                   s.Id,
		TenantId:             s.TenantId,
		ActiveCorpusVersion:  s.ActiveCorpusVersion,
		AllowFallbackToOlder: s.AllowFallbackToOlder,
		UpdatedAt:            s.UpdatedAt,
	}
}
