package analysis

import (
	"context"
	"fmt"

	"codeguard/pkg/qdrant"
	"codeguard/pkg/voyage"
)

const (
	// largeFileLines is where retrieval widens to more examples.
	largeFileLines = 1000
	largeTopK      = 5
	defaultTopK    = 3

	// scoreThreshold drops weakly similar matches.
	scoreThreshold = 0.6
)

// VectorRetriever retrieves known code smells from qdrant using voyage
// embeddings.
type VectorRetriever struct {
	embedder   *voyage.Client
	store      *qdrant.Client
	collection string
}

func NewVectorRetriever(embedder *voyage.Client, store *qdrant.Client, collection string) *VectorRetriever {
	return &VectorRetriever{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

var _ Retriever = (*VectorRetriever)(nil)

func (r *VectorRetriever) Retrieve(ctx context.Context, code string, lines int) ([]ContextExample, error) {
	vectors, err := r.embedder.Embed(ctx, []string{code})
	if err != nil {
		return nil, fmt.Errorf("embed snippet: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embed snippet: empty response")
	}

	topK := defaultTopK
	if lines > largeFileLines {
		topK = largeTopK
	}

	resp, err := r.store.SearchPoints(ctx, r.collection, qdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       topK,
		WithPayload: true,
	})
	if err != nil {
		return nil, fmt.Errorf("search collection %s: %w", r.collection, err)
	}

	var examples []ContextExample
	for _, point := range resp.Result {
		if point.Score < scoreThreshold {
			continue
		}
		examples = append(examples, ContextExample{
			Smell: payloadString(point.Payload, "smell"),
			Fix:   payloadString(point.Payload, "fix"),
			Score: point.Score,
		})
	}
	return examples, nil
}

func payloadString(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
