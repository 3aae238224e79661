package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"codeguard/config"
	"codeguard/pkg/log"
	pkgQdrant "codeguard/pkg/qdrant"
	"codeguard/pkg/voyage"
)

// example is one known code smell to seed into the vector store.
type example struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Smell string `json:"smell"`
	Fix   string `json:"fix"`
}

const embedBatchSize = 32

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/seed-examples/main.go <path/to/examples.json>")
		fmt.Println("       go run scripts/seed-examples/main.go --delete <example-id> [example-id...]")
		fmt.Println("Example: go run scripts/seed-examples/main.go data/code_smells.json")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	if os.Args[1] == "--delete" {
		if len(os.Args) < 3 {
			logger.Fatalf(ctx, "--delete requires at least one example id")
		}
		deleteExamples(ctx, logger, cfg, os.Args[2:])
		return
	}
	examplesPath := os.Args[1]

	raw, err := os.ReadFile(examplesPath)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read %s: %v", examplesPath, err)
	}
	var examples []example
	if err := json.Unmarshal(raw, &examples); err != nil {
		logger.Fatalf(ctx, "Failed to parse %s: %v", examplesPath, err)
	}
	logger.Infof(ctx, "Loaded %d examples from %s", len(examples), examplesPath)

	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	embeddingClient, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Voyage API: %v", err)
	}

	// Ensure the collection exists. Creating an existing collection fails,
	// which is fine on re-runs.
	if err := qdrantClient.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: cfg.Qdrant.CollectionName,
		Vectors: pkgQdrant.VectorConfig{
			Size:     cfg.Qdrant.VectorSize,
			Distance: "Cosine",
		},
	}); err != nil {
		logger.Warnf(ctx, "Create collection %s: %v (already exists?)", cfg.Qdrant.CollectionName, err)
	}

	successCount := 0
	for start := 0; start < len(examples); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(examples) {
			end = len(examples)
		}
		batch := examples[start:end]

		texts := make([]string, len(batch))
		for i, ex := range batch {
			texts[i] = ex.Code
		}

		vectors, err := embeddingClient.Embed(ctx, texts)
		if err != nil {
			logger.Errorf(ctx, "Failed to embed batch %d-%d: %v", start, end, err)
			continue
		}
		if len(vectors) != len(batch) {
			logger.Errorf(ctx, "Embed batch %d-%d: got %d vectors for %d texts", start, end, len(vectors), len(batch))
			continue
		}

		points := make([]pkgQdrant.Point, len(batch))
		for i, ex := range batch {
			points[i] = pkgQdrant.Point{
				ID:     pointID(ex.ID),
				Vector: vectors[i],
				Payload: map[string]interface{}{
					"example_id": ex.ID,
					"code":       ex.Code,
					"smell":      ex.Smell,
					"fix":        ex.Fix,
				},
			}
		}

		if err := qdrantClient.UpsertPoints(ctx, cfg.Qdrant.CollectionName, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
			logger.Errorf(ctx, "Failed to upsert batch %d-%d: %v", start, end, err)
			continue
		}

		successCount += len(batch)
		logger.Infof(ctx, "Seeded %d/%d examples", successCount, len(examples))
	}

	logger.Infof(ctx, "Seeding complete! %d/%d examples stored in %s.", successCount, len(examples), cfg.Qdrant.CollectionName)
}

// deleteExamples removes retired examples from the collection. Point IDs are
// derived from example IDs the same way seeding derives them.
func deleteExamples(ctx context.Context, logger log.Logger, cfg *config.Config, exampleIDs []string) {
	ids := make([]string, len(exampleIDs))
	for i, id := range exampleIDs {
		ids[i] = pointID(id)
	}

	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	if err := qdrantClient.DeletePoints(ctx, cfg.Qdrant.CollectionName, ids); err != nil {
		logger.Fatalf(ctx, "Failed to delete %d points from %s: %v", len(ids), cfg.Qdrant.CollectionName, err)
	}
	logger.Infof(ctx, "Deleted %d examples from %s.", len(ids), cfg.Qdrant.CollectionName)
}

// pointID maps a stable example ID to the UUID qdrant stores it under.
func pointID(exampleID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(exampleID)).String()
}
