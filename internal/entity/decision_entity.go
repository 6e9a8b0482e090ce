package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DecisionStatusFinal = "FINAL"
	DecisionStatusStop  = "STOP"
)

// Decision is the immutable outcome record of one classification request.
// DecisionHashSha256 covers a fixed-order projection of the fields below
// (citation ids sorted), so the hash is reproducible from the record alone.
type Decision struct {
	Id                 uuid.UUID
	TenantId           string
	RequestId          string
	Time               string
	Status             string
	Reason             *string
	EngineVersion      string
	CorpusVersion      string
	SnapshotPointer    string
	HsCandidate        string
	Confidence         float64
	GirPath            []string
	CitationIds        []string
	EvidenceBundleId   string
	DecisionHashSha256 string
	CreatedAt          time.Time
}

// EvidenceBundle is populated by the classification pipeline ahead of the
// decision; the ledger only validates against it.
type EvidenceBundle struct {
	Id              uuid.UUID
	TenantId        string
	BundleId        string
	RequestId       string
	CitationIds     []string
	SnapshotPointer string
	CreatedAt       time.Time
}

// ContainsAll reports whether every given citation id is part of the bundle.
func (b *EvidenceBundle) ContainsAll(citationIds []string) bool {
	if b == nil {
		return false
	}
	members := make(map[string]bool, len(b.CitationIds))
	for _, id := range b.CitationIds {
		members[id] = true
	}
	for _, id := range citationIds {
		if !members[id] {
			return false
		}
	}
	return true
}
