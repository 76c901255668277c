package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/neusearch/neusearch/internal/config"
	"github.com/neusearch/neusearch/internal/db"
	dbRedis "github.com/neusearch/neusearch/internal/db/redis"
	"github.com/neusearch/neusearch/internal/domain"
	logpkg "github.com/neusearch/neusearch/internal/logger"
	"github.com/neusearch/neusearch/internal/metrics"
	catalogrepo "github.com/neusearch/neusearch/internal/repository/catalog"
	"github.com/neusearch/neusearch/internal/repository/embcache"
	"github.com/neusearch/neusearch/internal/scrape"
	openaiProv "github.com/neusearch/neusearch/internal/transport/openai"
	ingestuc "github.com/neusearch/neusearch/internal/usecase/ingest"
	"github.com/neusearch/neusearch/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalog ingestion",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("source_url", cfg.Ingest.SourceURL),
		zap.Int("max_products", cfg.Ingest.MaxProducts),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog store", zap.Error(err))
	}
	defer store.Close()

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Catalog store not ready", zap.Error(err))
	}

	metrics.RegisterPipelineMetrics()

	docEmbedder := buildEmbedder(cfg, cfg.Providers.Embedding.DocumentInstruction, store, logger)

	catalog := catalogrepo.New(store, cfg.Providers.Embedding.Dimensions).
		WithHNSW(catalogrepo.HNSWConfig{
			M:           cfg.Catalog.HNSWM,
			EFConstruct: cfg.Catalog.HNSWEFConstruct,
		})

	source, err := scrape.New(cfg.Ingest.SourceURL)
	if err != nil {
		logger.Fatal("Invalid source URL", zap.Error(err))
	}

	svc := ingestuc.New(source, catalog, docEmbedder, ingestuc.Options{
		MaxProducts: cfg.Ingest.MaxProducts,
		Delay:       time.Duration(cfg.Ingest.DelaySec) * time.Second,
		Category:    cfg.Ingest.Category,
	})

	summary, err := svc.Run(ctx)
	if err != nil {
		logger.Fatal("Ingestion run failed", zap.Error(err))
	}

	logger.Info("Ingestion finished",
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("total", summary.Total()),
	)
}

// buildEmbedder assembles the document embedder chain: OpenAI -> Cached -> Instruction
func buildEmbedder(cfg config.Config, instruction string, store db.Store, logger *zap.Logger) domain.Embedder {
	base := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.Providers.APIKey,
		BaseURL:    cfg.Providers.BaseURL,
		Model:      cfg.Providers.Embedding.Model,
		Dimensions: cfg.Providers.Embedding.Dimensions,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
	}

	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}
	return embedder
}
