package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCorpusVersion is served when a tenant has no settings row yet.
const DefaultCorpusVersion = "0.1.0"

// TenantSettings is the single source of truth for the active corpus
// version. Serving calls re-read it every time; it is never cached.
type TenantSettings struct {
	Id                   uuid.UUID
	TenantId             string
	ActiveCorpusVersion  string
	AllowFallbackToOlder bool
	UpdatedAt            time.Time
}

// DefaultTenantSettings is the conservative fallback for unknown tenants.
func DefaultTenantSettings(tenantId string) *TenantSettings {
	return &TenantSettings{
		TenantId:             tenantId,
		ActiveCorpusVersion:  DefaultCorpusVersion,
		AllowFallbackToOlder: false,
	}
}
