package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName string
	Vector    []float32
	K         int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single record hit from a search.
// For KNN queries Score is the raw L2 distance (smaller is closer).
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
