package recommend

import (
	"context"

	"github.com/neusearch/neusearch/internal/domain"
	"github.com/neusearch/neusearch/internal/domain/product"
)

// CatalogReader retrieves products by vector similarity.
type CatalogReader interface {
	SearchNearest(ctx context.Context, vector []float32, k int) ([]product.Product, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Generator produces a free-text reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
