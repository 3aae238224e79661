package analysis

import (
	"context"

	"codeguard/pkg/llmprovider"
)

// Completer is the language-model surface the analyzer consumes.
// Satisfied by llmprovider.Manager.
type Completer interface {
	Complete(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// ContextExample is one known code smell retrieved for a snippet.
type ContextExample struct {
	Smell string
	Fix   string
	Score float64
}

// Retriever finds known smells similar to a code snippet. An empty result is
// a valid outcome; retrieval errors degrade the analysis, they do not fail it.
type Retriever interface {
	Retrieve(ctx context.Context, code string, lines int) ([]ContextExample, error)
}
