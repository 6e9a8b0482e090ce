package dto

type RecordDecisionRequest struct {
	RequestId        string   `json:"request_id" validate:"required"`
	Time             string   `json:"time" validate:"required"`
	Status           string   `json:"status" validate:"required,oneof=FINAL STOP"`
	Reason           *string  `json:"reason,omitempty"`
	EngineVersion    string   `json:"engine_version" validate:"required"`
	CorpusVersion    string   `json:"corpus_version" validate:"required"`
	SnapshotPointer  string   `json:"snapshot_pointer" validate:"required"`
	HsCandidate      string   `json:"hs_candidate"`
	Confidence       float64  `json:"confidence"`
	GirPath          []string `json:"gir_path"`
	CitationIds      []string `json:"citation_ids"`
	EvidenceBundleId string   `json:"evidence_bundle_id" validate:"required"`
}

type RecordDecisionResponse struct {
	Ok                 bool   `json:"ok"`
	Error              string `json:"error,omitempty"`
	CitationId         string `json:"citation_id,omitempty"`
	DecisionHashSha256 string `json:"decision_hash_sha256,omitempty"`
}

type UpsertBundleRequest struct {
	RequestId       string   `json:"request_id" validate:"required"`
	CitationIds     []string `json:"citation_ids" validate:"required,min=1"`
	SnapshotPointer string   `json:"snapshot_pointer" validate:"required"`
}

type UpsertBundleResponse struct {
	BundleId string `json:"bundle_id"`
}
