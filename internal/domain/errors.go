package domain

import "errors"

var (
	// ErrEmbeddingProvider signals an embedding provider failure.
	// Fatal to a chat request: without a query vector no search is possible.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrGenerationProvider signals a generation provider failure.
	// Recovered locally with a fallback reply, never surfaced to the client.
	ErrGenerationProvider = errors.New("generation provider error")
	// ErrProductNotFound signals a missing product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct signals a product that fails validation.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrVectorDimMismatch signals an embedding dimension mismatch.
	ErrVectorDimMismatch = errors.New("embedding dimension mismatch")
)

// KeyPrefix namespaces all neusearch keys in the store.
const KeyPrefix = "neusearch:"
