package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha256Hex(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Sha256Hex(""))
	assert.Len(t, Sha256Hex("0407 19 90 00"), 64)
}

func TestDocumentID(t *testing.T) {
	id := DocumentID("https://eur-lex.europa.eu/cn2024")

	assert.True(t, len(id) == len("doc_")+12)
	assert.Equal(t, "doc_", id[:4])
	assert.Equal(t, id, DocumentID("https://eur-lex.europa.eu/cn2024"))
	assert.NotEqual(t, id, DocumentID("https://eur-lex.europa.eu/cn2023"))
}

func TestChunkID(t *testing.T) {
	docId := DocumentID("https://eur-lex.europa.eu/cn2024")
	textHash := TextHash("0407 19 90 00 Other birds' eggs")

	id := ChunkID(docId, 3, textHash)
	assert.Equal(t, "chk_", id[:4])
	assert.Len(t, id, len("chk_")+16)

	// any input changing changes the id
	assert.NotEqual(t, id, ChunkID(docId, 4, textHash))
	assert.NotEqual(t, id, ChunkID(docId, 3, TextHash("other text")))
	assert.Equal(t, id, ChunkID(docId, 3, textHash))
}

func TestCitationID(t *testing.T) {
	chunkId := "chk_0123456789abcdef"
	snapHash := Sha256Hex("snapshot bytes")

	id := CitationID(chunkId, snapHash, `{"page_from":1,"page_to":2}`)
	assert.Equal(t, "cit_", id[:4])
	assert.Len(t, id, len("cit_")+16)

	// the locator participates in identity
	assert.NotEqual(t, id, CitationID(chunkId, snapHash, `{"page_from":1,"page_to":3}`))
	assert.Equal(t, id, CitationID(chunkId, snapHash, `{"page_from":1,"page_to":2}`))
}

func TestBundleID(t *testing.T) {
	assert.Equal(t, "eb_req-42", BundleID("req-42"))
}
