package dto

import "time"

type TenantSettingsResponse struct {
	TenantId             string     `json:"tenant_id"`
	ActiveCorpusVersion  string     `json:"active_corpus_version"`
	AllowFallbackToOlder bool       `json:"allow_fallback_to_older"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

type SetActiveCorpusRequest struct {
	ActiveCorpusVersion  string `json:"active_corpus_version" validate:"required"`
	AllowFallbackToOlder *bool  `json:"allow_fallback_to_older,omitempty"`
}
