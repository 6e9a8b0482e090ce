package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/model"
	"customs-evidence-be/pkg/database"
	"customs-evidence-be/pkg/evidence/identity"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	seedTenant = "demo"
	seedCorpus = "0.1.0"
)

type seedChunk struct {
	ordinal  int
	section  []string
	pageFrom int
	pageTo   int
	text     string
}

type seedDoc struct {
	sourceName string
	sourceUrl  string
	title      string
	instrument string
	chunks     []seedChunk
}

// A tiny tariff corpus good enough to exercise retrieval end to end.
var seedDocs = []seedDoc{
	{
		sourceName: "Combined Nomenclature 2024",
		sourceUrl:  "https://example.eu/cn/2024/chapter-04",
		title:      "Chapter 4: Dairy produce; birds' eggs; natural honey",
		instrument: "nomenclature",
		chunks: []seedChunk{
			{1, []string{"Section I", "Chapter 4"}, 88, 88, "0407 19 90 00 Other birds' eggs, in shell, fresh, other than of fowls of the species Gallus domesticus."},
			{2, []string{"Section I", "Chapter 4"}, 89, 89, "0408 11 80 Egg yolks, dried, other than unfit for human consumption."},
			{3, []string{"Section I", "Chapter 4"}, 90, 91, "Natural honey of heading 0409 00 00 remains classified in this chapter regardless of packaging."},
		},
	},
	{
		sourceName: "CN Explanatory Notes 2024",
		sourceUrl:  "https://example.eu/cn/2024/expl/chapter-04",
		title:      "Explanatory notes to Chapter 4",
		instrument: "explanatory_notes",
		chunks: []seedChunk{
			{1, []string{"Chapter 4", "General"}, 12, 13, "Heading 0407 covers eggs in shell; shelled eggs and egg yolks fall in heading 0408."},
			{2, []string{"Chapter 4", "0407"}, 14, 14, "Subheading 0407 19 90 applies to fertilised eggs for incubation other than poultry."},
		},
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo tenant %q with corpus %q...", seedTenant, seedCorpus)

	seedTenantSettings(db)

	chunks, citations := 0, 0
	for _, doc := range seedDocs {
		c, cit := seedDocument(db, doc)
		chunks += c
		citations += cit
	}

	seedReport(db, len(seedDocs), chunks, citations)

	color.Green("Done: %d documents, %d chunks, %d citations.", len(seedDocs), chunks, citations)
}

func seedTenantSettings(db *gorm.DB) {
	var existing model.TenantSettings
	if err := db.Where("tenant_id = ?", seedTenant).First(&existing).Error; err == nil {
		color.Yellow("Tenant settings already exist, skipping...")
		return
	}

	settings := model.TenantSettings{
		TenantId:            seedTenant,
		ActiveCorpusVersion: seedCorpus,
	}
	if err := db.Create(&settings).Error; err != nil {
		log.Fatalf("Error: Failed to seed tenant settings: %v", err)
	}
	color.Green("Seeded tenant settings.")
}

func seedDocument(db *gorm.DB, doc seedDoc) (int, int) {
	documentId := identity.DocumentID(doc.sourceUrl)
	snapshotPointer := "s3://demo-snapshots/" + documentId + ".pdf"
	snapshotHash := identity.Sha256Hex(doc.sourceUrl + ":snapshot")

	var existing model.Document
	if err := db.Where("tenant_id = ? AND document_id = ?", seedTenant, documentId).First(&existing).Error; err == nil {
		color.Yellow("Document %s already exists, skipping...", documentId)
		return 0, 0
	}

	record := model.Document{
		TenantId:          seedTenant,
		DocumentId:        documentId,
		SourceName:        doc.sourceName,
		SourceUrl:         doc.sourceUrl,
		SourceTrustLevel:  "official",
		Jurisdiction:      "EU",
		InstrumentType:    doc.instrument,
		Title:             doc.title,
		Language:          "en",
		EffectiveFrom:     "2024-01-01",
		ContentHashSha256: identity.Sha256Hex(doc.sourceUrl + ":content"),
		SnapshotPointer:   snapshotPointer,
		Mime:              "application/pdf",
		CorpusVersion:     seedCorpus,
		Status:            entity.DocumentStatusActive,
	}
	if err := db.Create(&record).Error; err != nil {
		log.Fatalf("Error: Failed to seed document %s: %v", documentId, err)
	}

	chunks, citations := 0, 0
	for _, sc := range seedChunksOf(doc, documentId, snapshotPointer, snapshotHash) {
		if err := db.Create(&sc.citation).Error; err != nil {
			log.Fatalf("Error: Failed to seed citation %s: %v", sc.citation.CitationId, err)
		}
		citations++
		if err := db.Create(&sc.chunk).Error; err != nil {
			log.Fatalf("Error: Failed to seed chunk %s: %v", sc.chunk.ChunkId, err)
		}
		chunks++
	}

	color.Green("Seeded document %s (%d chunks).", documentId, chunks)
	return chunks, citations
}

type seededPair struct {
	chunk    model.Chunk
	citation model.Citation
}

func seedChunksOf(doc seedDoc, documentId, snapshotPointer, snapshotHash string) []seededPair {
	pairs := make([]seededPair, 0, len(doc.chunks))
	for _, sc := range doc.chunks {
		textHash := identity.TextHash(sc.text)
		chunkId := identity.ChunkID(documentId, sc.ordinal, textHash)

		pageFrom, pageTo := sc.pageFrom, sc.pageTo
		locator := entity.Locator{PageFrom: &pageFrom, PageTo: &pageTo}
		citationId := identity.CitationID(chunkId, snapshotHash, locator.CanonicalJSON())
		locatorJSON, _ := json.Marshal(locator)

		now := time.Now()
		pairs = append(pairs, seededPair{
			chunk: model.Chunk{
				TenantId:       seedTenant,
				ChunkId:        chunkId,
				DocumentId:     documentId,
				Ordinal:        sc.ordinal,
				SectionPath:    datatypes.NewJSONSlice(sc.section),
				Text:           sc.text,
				TextHashSha256: textHash,
				Language:       "en",
				Jurisdiction:   "EU",
				InstrumentType: doc.instrument,
				TrustLevel:     "official",
				DocStatus:      entity.DocumentStatusActive,
				EffectiveFrom:  "2024-01-01",
				CitationId:     citationId,
				CorpusVersion:  seedCorpus,
				IndexPending:   false,
				IndexedAt:      &now,
			},
			citation: model.Citation{
				TenantId:           seedTenant,
				CitationId:         citationId,
				DocumentId:         documentId,
				ChunkId:            chunkId,
				CorpusVersion:      seedCorpus,
				SnapshotPointer:    snapshotPointer,
				SnapshotHashSha256: snapshotHash,
				Locator:            datatypes.JSON(locatorJSON),
			},
		})
	}
	return pairs
}

func seedReport(db *gorm.DB, documents, chunks, citations int) {
	countsJSON, _ := json.Marshal(entity.ReportCounts{
		Documents: documents,
		Chunks:    chunks,
		Citations: citations,
	})

	var existing model.IngestionReport
	if err := db.Where("tenant_id = ? AND corpus_version = ?", seedTenant, seedCorpus).First(&existing).Error; err == nil {
		color.Yellow("Ingestion report already exists, skipping...")
		return
	}

	report := model.IngestionReport{
		TenantId:      seedTenant,
		CorpusVersion: seedCorpus,
		SourceArchive: "seed://demo-corpus",
		Counts:        datatypes.JSON(countsJSON),
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&report).Error; err != nil {
		log.Fatalf("Error: Failed to seed ingestion report: %v", err)
	}
	color.Green("Seeded ingestion report.")
}
