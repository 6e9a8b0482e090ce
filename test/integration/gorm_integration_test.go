package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"customs-evidence-be/internal/entity"
	"customs-evidence-be/internal/repository/specification"
	"customs-evidence-be/internal/repository/unitofwork"
	"customs-evidence-be/pkg/database"
	"customs-evidence-be/pkg/evidence/identity"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.ChunkRepository())
	assert.NotNil(t, uow.CitationRepository())
	assert.NotNil(t, uow.DecisionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	tenantId := "it-" + uuid.New().String()[:8]

	t.Run("Check Chunk Repository", func(t *testing.T) {
		count, err := uow.ChunkRepository().Count(context.Background(),
			specification.ByTenant{TenantId: tenantId},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Transactional Document Write Rolls Back", func(t *testing.T) {
		txUow := uowFactory.NewUnitOfWork(context.Background())
		require.NoError(t, txUow.Begin(context.Background()))

		documentId := identity.DocumentID("https://example.test/" + tenantId)
		doc := &entity.Document{
			Id:                uuid.New(),
			TenantId:          tenantId,
			DocumentId:        documentId,
			SourceName:        "Integration Source",
			SourceUrl:         "https://example.test/" + tenantId,
			SourceTrustLevel:  "official",
			Jurisdiction:      "EU",
			InstrumentType:    "nomenclature",
			Title:             "Integration Document",
			Language:          "en",
			ContentHashSha256: identity.Sha256Hex("integration"),
			SnapshotPointer:   "s3://it/" + documentId,
			CorpusVersion:     "0.1.0",
			Status:            entity.DocumentStatusActive,
		}
		require.NoError(t, txUow.DocumentRepository().Create(context.Background(), doc))

		inside, err := txUow.DocumentRepository().FindOne(context.Background(),
			specification.ByTenant{TenantId: tenantId},
			specification.ByDocumentId{DocumentId: documentId},
		)
		require.NoError(t, err)
		require.NotNil(t, inside)

		require.NoError(t, txUow.Rollback())

		outside, err := uow.DocumentRepository().FindOne(context.Background(),
			specification.ByTenant{TenantId: tenantId},
			specification.ByDocumentId{DocumentId: documentId},
		)
		require.NoError(t, err)
		assert.Nil(t, outside)
	})

	t.Run("Relevance Search Returns Seeded Text", func(t *testing.T) {
		txUow := uowFactory.NewUnitOfWork(context.Background())
		require.NoError(t, txUow.Begin(context.Background()))
		defer txUow.Rollback()

		documentId := identity.DocumentID("https://example.test/search/" + tenantId)
		text := "0101 21 00 Pure-bred breeding horses."
		textHash := identity.TextHash(text)
		chunkId := identity.ChunkID(documentId, 1, textHash)

		pageFrom, pageTo := 1, 1
		locator := entity.Locator{PageFrom: &pageFrom, PageTo: &pageTo}
		snapshotHash := identity.Sha256Hex("search snapshot")
		citationId := identity.CitationID(chunkId, snapshotHash, locator.CanonicalJSON())

		require.NoError(t, txUow.CitationRepository().Create(context.Background(), &entity.Citation{
			Id:                 uuid.New(),
			TenantId:           tenantId,
			CitationId:         citationId,
			DocumentId:         documentId,
			ChunkId:            chunkId,
			CorpusVersion:      "0.1.0",
			SnapshotPointer:    "s3://it/search",
			SnapshotHashSha256: snapshotHash,
			Locator:            locator,
		}))
		require.NoError(t, txUow.ChunkRepository().Create(context.Background(), &entity.Chunk{
			Id:             uuid.New(),
			TenantId:       tenantId,
			ChunkId:        chunkId,
			DocumentId:     documentId,
			Ordinal:        1,
			Text:           text,
			TextHashSha256: textHash,
			Language:       "en",
			Jurisdiction:   "EU",
			InstrumentType: "nomenclature",
			TrustLevel:     "official",
			DocStatus:      entity.DocumentStatusActive,
			CitationId:     citationId,
			CorpusVersion:  "0.1.0",
			IndexPending:   true,
		}))

		hits, err := txUow.ChunkRepository().Search(context.Background(), "breeding horses", 10,
			specification.ByTenant{TenantId: tenantId},
			specification.ByCorpusVersion{CorpusVersion: "0.1.0"},
		)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, chunkId, hits[0].ChunkId)
	})
}
