package catalog

import (
	"context"
	"testing"

	"github.com/neusearch/neusearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsets       map[string]map[string]string
	nextID      int64
	createdDefs []*db.IndexDefinition
	indexExists bool

	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchListFn  func(ctx context.Context, index, query string, offset, limit int) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index, query string) (int, error)
	hsetErr       error
	createErr     error
}

func newMockStore() *mockStore {
	return &mockStore{hsets: make(map[string]map[string]string)}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	m.hsets[key] = fields
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	return m.hsets[key], nil
}

func (m *mockStore) Incr(_ context.Context, _ string) (int64, error) {
	m.nextID++
	return m.nextID, nil
}

func (m *mockStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.createdDefs = append(m.createdDefs, def)
	return nil
}

func (m *mockStore) IndexExists(_ context.Context, _ string) (bool, error) {
	return m.indexExists, nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchList(
	ctx context.Context, index, query string, offset, limit int,
) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, index, query, offset, limit)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func newTestRepo(t *testing.T, dim int) (*Repo, *mockStore) {
	t.Helper()
	ms := newMockStore()
	return New(ms, dim), ms
}

func testVector(dim int) []float32 {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = 0.1
	}
	return vec
}
