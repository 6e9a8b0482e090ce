package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Deterministic, content-addressed id convention for the evidence corpus.
// Re-ingesting identical content re-derives identical ids, which is what
// makes the whole ingestion path an idempotent upsert with no sequence
// state to coordinate.

func Sha256Hex(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// TextHash is the content hash of a chunk's raw text.
func TextHash(text string) string {
	return Sha256Hex(text)
}

// DocumentID derives a stable document id from the source URL.
func DocumentID(sourceURL string) string {
	return "doc_" + Sha256Hex(sourceURL)[:12]
}

// ChunkID derives a stable chunk id from its parent document, its ordinal
// within that document and the hash of its text.
func ChunkID(documentID string, ordinal int, textHash string) string {
	return "chk_" + Sha256Hex(fmt.Sprintf("%s:%d:%s", documentID, ordinal, textHash))[:16]
}

// CitationID derives a stable citation id from the chunk it proves, the
// snapshot hash and the canonicalized locator.
func CitationID(chunkID, snapshotHash, locatorKey string) string {
	return "cit_" + Sha256Hex(fmt.Sprintf("%s:%s:%s", chunkID, snapshotHash, locatorKey))[:16]
}

// BundleID names the evidence bundle attached to one classification request.
func BundleID(requestID string) string {
	return "eb_" + requestID
}
