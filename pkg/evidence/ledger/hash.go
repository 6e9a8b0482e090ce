package ledger

import (
	"encoding/json"
	"sort"

	"customs-evidence-be/pkg/evidence/identity"
)

// Projection is the fixed-order view of a decision that gets hashed.
// Citation ids are sorted before hashing, so the resulting hash is
// invariant to the order in which evidence was cited. Reason is excluded:
// it is operator prose, not part of the audited outcome.
type Projection struct {
	RequestId        string   `json:"request_id"`
	Time             string   `json:"time"`
	Status           string   `json:"status"`
	EngineVersion    string   `json:"engine_version"`
	CorpusVersion    string   `json:"corpus_version"`
	SnapshotPointer  string   `json:"snapshot_pointer"`
	HsCandidate      string   `json:"hs_candidate"`
	Confidence       float64  `json:"confidence"`
	GirPath          []string `json:"gir_path"`
	CitationIds      []string `json:"citation_ids"`
	EvidenceBundleId string   `json:"evidence_bundle_id"`
}

// Hash computes the reproducible decision hash over the canonical
// projection. The input projection is not mutated.
func Hash(p Projection) (string, error) {
	sortedIds := make([]string, 0, len(p.CitationIds))
	sortedIds = append(sortedIds, p.CitationIds...)
	sort.Strings(sortedIds)
	p.CitationIds = sortedIds

	if p.GirPath == nil {
		p.GirPath = []string{}
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return identity.Sha256Hex(string(b)), nil
}
