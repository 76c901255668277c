// Package ingest runs catalog ingestion: discover candidates, embed
// their text, and insert new products, one failure never aborting a run.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domingest "github.com/neusearch/neusearch/internal/domain/ingest"
	"github.com/neusearch/neusearch/internal/domain/product"
	"github.com/neusearch/neusearch/internal/logger"
	"github.com/neusearch/neusearch/internal/metrics"
)

// Options tunes an ingestion run.
type Options struct {
	// MaxProducts caps the number of inserts per run.
	MaxProducts int
	// Delay is the pause after each insert, to stay polite to the
	// upstream site and the embedding provider.
	Delay time.Duration
	// Category is assigned to every ingested product.
	Category string
}

// Service ingests products from a Source into the catalog.
type Service struct {
	source  Source
	catalog CatalogWriter
	embed   Embedder
	opts    Options
}

// New creates an ingestion service.
func New(source Source, catalog CatalogWriter, embed Embedder, opts Options) *Service {
	return &Service{source: source, catalog: catalog, embed: embed, opts: opts}
}

// Run executes one ingestion pass and returns per-run totals. Candidate
// failures are folded into the summary; only discovery and index setup
// errors abort the run.
func (s *Service) Run(ctx context.Context) (domingest.Summary, error) {
	log := logger.FromContext(ctx)

	if err := s.catalog.EnsureIndex(ctx); err != nil {
		return domingest.Summary{}, fmt.Errorf("ensure index: %w", err)
	}

	candidates, err := s.source.Discover(ctx)
	if err != nil {
		return domingest.Summary{}, fmt.Errorf("discover candidates: %w", err)
	}
	log.Info("discovered candidates", zap.Int("count", len(candidates)))

	var results []domingest.Result
	inserted := 0
	for _, c := range candidates {
		if inserted >= s.opts.MaxProducts {
			break
		}
		if err := ctx.Err(); err != nil {
			return domingest.Summarize(results), err
		}

		result := s.processCandidate(ctx, c)
		results = append(results, result)
		metrics.IngestItemsTotal.WithLabelValues(string(result.Status())).Inc()

		switch result.Status() {
		case domingest.StatusInserted:
			inserted++
			log.Info("product ingested", zap.String("title", result.Title()))
			sleep(ctx, s.opts.Delay)
		case domingest.StatusSkipped:
			log.Debug("duplicate skipped", zap.String("title", result.Title()))
		case domingest.StatusFailed:
			log.Warn("candidate failed", zap.String("title", result.Title()), zap.Error(result.Err()))
		}
	}

	return domingest.Summarize(results), nil
}

func (s *Service) processCandidate(ctx context.Context, c Candidate) domingest.Result {
	exists, err := s.catalog.ExistsByTitle(ctx, c.Title)
	if err != nil {
		return domingest.NewFailed(c.Title, fmt.Errorf("duplicate check: %w", err))
	}
	if exists {
		return domingest.NewSkipped(c.Title)
	}

	description, err := s.source.Describe(ctx, c)
	if err != nil {
		return domingest.NewFailed(c.Title, fmt.Errorf("fetch description: %w", err))
	}
	if description == "" {
		description = c.Title
	}

	price := NormalizePrice(c.RawPrice)

	text := fmt.Sprintf("Product: %s. Description: %s. Price: %s", c.Title, description, price)
	embResult, err := s.embed.Embed(ctx, text)
	if err != nil {
		return domingest.NewFailed(c.Title, fmt.Errorf("embed: %w", err))
	}

	p, err := product.New(product.Fields{
		Title:       c.Title,
		Price:       price,
		Description: description,
		Features:    s.opts.Category,
		ImageURL:    c.ImageURL,
		Category:    s.opts.Category,
		ProductURL:  c.ProductURL,
	}, embResult.Embedding)
	if err != nil {
		return domingest.NewFailed(c.Title, err)
	}

	if _, err := s.catalog.Insert(ctx, p); err != nil {
		return domingest.NewFailed(c.Title, fmt.Errorf("insert: %w", err))
	}
	return domingest.NewInserted(c.Title)
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
