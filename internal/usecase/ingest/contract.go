package ingest

import (
	"context"

	"github.com/neusearch/neusearch/internal/domain"
	"github.com/neusearch/neusearch/internal/domain/product"
)

// Candidate is a product discovered on a listing page, before its
// detail page has been fetched.
type Candidate struct {
	Title      string
	RawPrice   string
	ProductURL string
	ImageURL   string
}

// Source discovers product candidates and resolves their descriptions.
type Source interface {
	// Discover returns candidates from the listing page in page order.
	Discover(ctx context.Context) ([]Candidate, error)
	// Describe fetches the candidate's detail page and returns its
	// description text.
	Describe(ctx context.Context, c Candidate) (string, error)
}

// CatalogWriter stores products and answers duplicate checks.
type CatalogWriter interface {
	EnsureIndex(ctx context.Context) error
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Insert(ctx context.Context, p product.Product) (product.Product, error)
}

// Embedder vectorizes document text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
