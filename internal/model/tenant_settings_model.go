package model

import (
	"time"

	"github.com/google/uuid"
)

type TenantSettings struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId             string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ActiveCorpusVersion  string    `gorm:"type:varchar(64);not null"`
	AllowFallbackToOlder bool      `gorm:"not null;default:false"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (TenantSettings) TableName() string {
	return "tenant_settings"
}
