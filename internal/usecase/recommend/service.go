// Package recommend implements the chat pipeline: intent guard, query
// embedding, nearest-product retrieval, and grounded reply generation.
package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/neusearch/neusearch/internal/domain/intent"
	"github.com/neusearch/neusearch/internal/domain/product"
	"github.com/neusearch/neusearch/internal/logger"
	"github.com/neusearch/neusearch/internal/metrics"
)

// Canned replies for conversational queries and degraded paths.
const (
	greetingReply = "Hello! 👋 I am your AI shopping assistant. How can I help you today? (e.g., 'I have dry hair')"
	farewellReply = "Goodbye! 👋 If you have any questions later, feel free to ask."
	thanksReply   = "You're welcome! Let me know if you need anything else."
	noMatchReply  = "Sorry, I couldn't find any matching products."
	fallbackReply = "I'm having trouble thinking right now."
)

// Reply is the outcome of a chat turn. Products is empty for
// conversational queries and clarifying questions.
type Reply struct {
	Response string
	Products []product.Product
}

// Service runs the recommendation pipeline.
type Service struct {
	catalog CatalogReader
	embed   Embedder
	gen     Generator
	topK    int
}

// New creates a recommendation service retrieving topK candidates per query.
func New(catalog CatalogReader, embed Embedder, gen Generator, topK int) *Service {
	return &Service{catalog: catalog, embed: embed, gen: gen, topK: topK}
}

// Chat answers a single user query. Conversational queries short-circuit
// to canned replies without touching any provider. Substantive queries
// are embedded, matched against the catalog, and answered by the
// generator; a generator failure degrades to a stock reply while
// keeping the retrieved products.
func (s *Service) Chat(ctx context.Context, query string) (Reply, error) {
	switch intent.Classify(query) {
	case intent.Greeting:
		metrics.ChatRequestsTotal.WithLabelValues("canned").Inc()
		return Reply{Response: greetingReply}, nil
	case intent.Farewell:
		metrics.ChatRequestsTotal.WithLabelValues("canned").Inc()
		return Reply{Response: farewellReply}, nil
	case intent.Thanks:
		metrics.ChatRequestsTotal.WithLabelValues("canned").Inc()
		return Reply{Response: thanksReply}, nil
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		return Reply{}, fmt.Errorf("vectorize query: %w", err)
	}

	products, err := s.catalog.SearchNearest(ctx, embResult.Embedding, s.topK)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		return Reply{}, fmt.Errorf("search products: %w", err)
	}

	if len(products) == 0 {
		metrics.ChatRequestsTotal.WithLabelValues("no_match").Inc()
		return Reply{Response: noMatchReply}, nil
	}

	raw, err := s.gen.Generate(ctx, buildPrompt(query, products))
	if err != nil {
		// The user still gets the retrieved products even when the
		// generator is down.
		logger.FromContext(ctx).Warn("generation failed, serving fallback reply", zap.Error(err))
		metrics.ChatRequestsTotal.WithLabelValues("fallback").Inc()
		return Reply{Response: fallbackReply, Products: products}, nil
	}

	reply, clarify := parseReply(raw)
	if clarify {
		metrics.ChatRequestsTotal.WithLabelValues("clarify").Inc()
		return Reply{Response: reply}, nil
	}

	metrics.ChatRequestsTotal.WithLabelValues("recommended").Inc()
	return Reply{Response: reply, Products: products}, nil
}
