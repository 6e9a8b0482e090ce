package service

import "fmt"

// Guardrail codes carried in ok:false responses. These are expected
// outcomes of the citation-integrity checks, not transport errors.
const (
	ErrCodeRunNotRunning           = "run_not_running"
	ErrCodeMissingCitationProof    = "missing_citation_proof"
	ErrCodeMissingCitations        = "missing_citations"
	ErrCodeMissingReason           = "missing_reason"
	ErrCodeMissingEvidenceBundle   = "missing_evidence_bundle"
	ErrCodeEvidenceBundleMismatch  = "evidence_bundle_mismatch"
	ErrCodeSnapshotPointerMismatch = "snapshot_pointer_mismatch"
)

// Reasons for expected-empty retrieval outcomes.
const (
	ReasonEmptyQuery        = "empty_query"
	ReasonNoHits            = "no_hits"
	ReasonNoCitableEvidence = "no_citable_evidence"
)

// CorpusMismatchError is a hard consistency failure: a hydrated chunk
// belongs to a different corpus version than the tenant's active one.
// It aborts the whole call rather than silently dropping the chunk.
type CorpusMismatchError struct {
	ChunkId       string
	ChunkVersion  string
	ActiveVersion string
}

func (e *CorpusMismatchError) Error() string {
	return fmt.Sprintf(
		"corpus mismatch: chunk %s belongs to corpus %s but active corpus is %s",
		e.ChunkId, e.ChunkVersion, e.ActiveVersion,
	)
}
