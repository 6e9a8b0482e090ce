package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// RunStats accumulate additively across batches of one ingestion run.
type RunStats struct {
	DocumentsNew     int `json:"documents_new"`
	DocumentsUpdated int `json:"documents_updated"`
	ChunksWritten    int `json:"chunks_written"`
	CitationsWritten int `json:"citations_written"`
}

func (s RunStats) Add(other RunStats) RunStats {
	return RunStats{
		DocumentsNew:     s.DocumentsNew + other.DocumentsNew,
		DocumentsUpdated: s.DocumentsUpdated + other.DocumentsUpdated,
		ChunksWritten:    s.ChunksWritten + other.ChunksWritten,
		CitationsWritten: s.CitationsWritten + other.CitationsWritten,
	}
}

type IngestionRun struct {
	Id            uuid.UUID
	TenantId      string
	RunId         string
	SourceId      string
	CorpusVersion string
	Status        string
	Error         *string
	Stats         RunStats
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// ReportCounts is the cheap count projection kept per (tenant, corpus).
// Serving paths read these instead of scanning tables.
type ReportCounts struct {
	Documents int `json:"documents"`
	Citations int `json:"citations"`
	Chunks    int `json:"chunks"`
}

type IngestionReport struct {
	Id            uuid.UUID
	TenantId      string
	CorpusVersion string
	SourceArchive string
	Counts        ReportCounts
	CreatedAt     time.Time
}
