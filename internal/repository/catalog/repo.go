// Package catalog persists products in the store and serves
// similarity-ordered retrieval.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/neusearch/neusearch/internal/db"
	dbredis "github.com/neusearch/neusearch/internal/db/redis"
	"github.com/neusearch/neusearch/internal/domain"
	"github.com/neusearch/neusearch/internal/domain/product"
)

const (
	productKeyPrefix = domain.KeyPrefix + "product:"
	productIndexName = domain.KeyPrefix + "products:idx"
	idCounterKey     = domain.KeyPrefix + "product:next_id"
)

// store is the consumer interface for the catalog repository (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Incr(ctx context.Context, key string) (int64, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// HNSWConfig carries index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the catalog store over db.Store.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a catalog repository. vectorDim is the embedding dimension D;
// every stored product must carry a vector of exactly that size.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW sets HNSW index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the product FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:     productIndexName,
		Prefixes: []string{productKeyPrefix},
		Fields: []db.IndexField{
			{Name: "title", Type: db.IndexFieldTag},
			{Name: "category", Type: db.IndexFieldTag},
			{
				Name:              "embedding",
				Type:              db.IndexFieldVector,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceL2,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create product index: %w", err)
	}
	return nil
}

// Insert assigns an id and stores the product. Products are never
// updated in place, so a plain HSET on a fresh key is sufficient.
func (r *Repo) Insert(ctx context.Context, p product.Product) (product.Product, error) {
	if len(p.Embedding()) != r.vectorDim {
		return product.Product{}, fmt.Errorf(
			"%w: got %d, want %d", domain.ErrVectorDimMismatch, len(p.Embedding()), r.vectorDim,
		)
	}

	id, err := r.store.Incr(ctx, idCounterKey)
	if err != nil {
		return product.Product{}, fmt.Errorf("assign product id: %w", err)
	}

	stored := p.WithID(id)
	if err := r.store.HSet(ctx, productKey(id), buildHashFields(stored)); err != nil {
		return product.Product{}, fmt.Errorf("store product %d: %w", id, err)
	}
	return stored, nil
}

// ExistsByTitle reports whether a product with the exact title is stored.
func (r *Repo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	query := fmt.Sprintf("@title:{%s}", dbredis.EscapeTag(title))
	n, err := r.store.SearchCount(ctx, productIndexName, query)
	if err != nil {
		return false, fmt.Errorf("lookup title: %w", err)
	}
	return n > 0, nil
}

// List returns up to limit products in id order.
func (r *Repo) List(ctx context.Context, limit int) ([]product.Product, error) {
	result, err := r.store.SearchList(ctx, productIndexName, "*", 0, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := parseEntries(result.Entries)
	sort.Slice(products, func(i, j int) bool { return products[i].ID() < products[j].ID() })
	return products, nil
}

// SearchNearest returns the k nearest products by L2 distance to the
// query vector, ascending. No distance threshold is applied.
func (r *Repo) SearchNearest(ctx context.Context, vector []float32, k int) ([]product.Product, error) {
	result, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName: productIndexName,
		Vector:    vector,
		K:         k,
	})
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	return parseEntries(result.Entries), nil
}

// Count returns the number of stored products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, productIndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func parseEntries(entries []db.SearchEntry) []product.Product {
	products := make([]product.Product, 0, len(entries))
	for _, entry := range entries {
		id := extractID(entry.Key)
		products = append(products, parseHashFields(id, entry.Fields))
	}
	return products
}

func productKey(id int64) string {
	return productKeyPrefix + strconv.FormatInt(id, 10)
}

func extractID(key string) int64 {
	id, _ := strconv.ParseInt(strings.TrimPrefix(key, productKeyPrefix), 10, 64)
	return id
}
