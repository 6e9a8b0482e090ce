package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Locator identifies where within a snapshot a chunk's text originates.
// Field order matters: the canonical JSON form feeds citation id derivation.
type Locator struct {
	PageFrom *int   `json:"page_from,omitempty"`
	PageTo   *int   `json:"page_to,omitempty"`
	CharFrom *int   `json:"char_from,omitempty"`
	CharTo   *int   `json:"char_to,omitempty"`
	Selector string `json:"selector,omitempty"`
}

// CanonicalJSON renders the locator with a fixed field order and absent
// fields omitted, so identical locators always serialize identically.
func (l Locator) CanonicalJSON() string {
	b, err := json.Marshal(l)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// HasPageRange reports whether both ends of the page range are defined.
func (l Locator) HasPageRange() bool {
	return l.PageFrom != nil && l.PageTo != nil
}

type Citation struct {
	Id                 uuid.UUID
	TenantId           string
	CitationId         string // cit_<hash(chunk_id:snapshot_hash:locator)>
	DocumentId         string
	ChunkId            string
	CorpusVersion      string
	SnapshotPointer    string
	SnapshotHashSha256 string
	Locator            Locator
	CreatedAt          time.Time
}

// HasProof is the citation-proof invariant: a cryptographic content hash
// plus a complete page range. Nothing without proof may reach a caller.
func (c *Citation) HasProof() bool {
	return c != nil && c.SnapshotHashSha256 != "" && c.Locator.HasPageRange()
}
