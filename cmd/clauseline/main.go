// Command clauseline analyses legal documents clause by clause and
// serves the resulting timelines over a CLI and an HTTP API.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/ai"
	configfile "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/config/file"
	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/storage/sqlite"
	vectormem "github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/vector/memory"
	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driven/vector/pgvector"
	"github.com/lexatlas-labs/clauseline-cli/internal/adapters/driving/cli"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driven"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/services"
	"github.com/lexatlas-labs/clauseline-cli/internal/extractors"
	"github.com/lexatlas-labs/clauseline-cli/internal/extractors/docx"
	"github.com/lexatlas-labs/clauseline-cli/internal/extractors/pdf"
	"github.com/lexatlas-labs/clauseline-cli/internal/extractors/plaintext"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
	"github.com/lexatlas-labs/clauseline-cli/internal/metrics"
)

// version is overridden at build time via ldflags.
var version = "dev"

// reconcileTimeout bounds the startup repair of half-written clauses.
const reconcileTimeout = 2 * time.Minute

func main() {
	// Secrets may live in a local .env file instead of the shell.
	_ = godotenv.Load()

	cfgStore, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Error(err, "failed to load configuration")
		os.Exit(1)
	}

	store, err := sqlite.NewStore(cfgStore.GetString(configfile.KeyDataDir))
	if err != nil {
		logger.Error(err, "failed to open storage")
		os.Exit(1)
	}
	defer store.Close()

	m := metrics.New(prometheus.DefaultRegisterer)
	analysisSettings := configfile.AnalysisSettings(cfgStore)
	embedSettings := configfile.EmbeddingSettings(cfgStore)

	judges := buildJudgeChain(cfgStore, analysisSettings)
	embedder := buildEmbedder(&embedSettings)

	var index driven.ClauseIndex
	if embedder != nil {
		index = buildIndex(cfgStore, embedSettings.Dimensions)
	}

	registry := buildExtractorRegistry()

	analysisService := services.NewAnalysisService(services.AnalysisConfig{
		Store:     store.DocumentStore(),
		Registry:  registry,
		Judges:    judges,
		Embedder:  embedder,
		Index:     index,
		Knowledge: store.KnowledgeStore(),
		Metrics:   m,
		Settings:  analysisSettings,
	})
	ragService := services.NewRAGService(services.RAGConfig{
		Store:     store.DocumentStore(),
		Knowledge: store.KnowledgeStore(),
		Embedder:  embedder,
		Index:     index,
		Judges:    judges,
		Metrics:   m,
	})
	knowledgeService := services.NewKnowledgeService(store.KnowledgeStore(), embedder, index)

	// Repair clauses whose embedding write was interrupted by a crash.
	reconcileCtx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	if err := analysisService.Reconcile(reconcileCtx); err != nil {
		logger.Warn("startup reconciliation incomplete: %v", err)
	}
	cancel()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Analysis:  analysisService,
		RAG:       ragService,
		Knowledge: knowledgeService,
		Config:    cfgStore,
	})
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildJudgeChain creates one judge per provider in the configured
// preference order. The fully configured judge provider uses its file
// settings; the rest fall back to adapter defaults with API keys from
// the environment, so a secondary provider can serve as fallback
// without its own config section.
func buildJudgeChain(cfgStore *configfile.ConfigStore, analysisSettings domain.AnalysisSettings) driven.JudgeChain {
	primary := configfile.JudgeSettings(cfgStore)

	order := analysisSettings.ProviderOrder
	if primary.Provider.IsValid() && !containsProvider(order, primary.Provider) {
		order = append([]domain.AIProvider{primary.Provider}, order...)
	}

	var entries []ai.ChainEntry
	for _, provider := range order {
		settings := domain.JudgeSettings{Provider: provider, APIKey: envAPIKey(provider)}
		if provider == primary.Provider {
			settings = primary
		}

		judge, err := ai.CreateAndValidateJudge(&settings)
		if err != nil {
			logger.Warn("judge provider %s unavailable: %v", provider, err)
			continue
		}
		if judge == nil {
			continue
		}

		rpm := 0
		if provider == primary.Provider {
			rpm = primary.RequestsPerMinute
		}
		entries = append(entries, ai.ChainEntry{Judge: judge, RequestsPerMinute: rpm})
	}

	if len(entries) == 0 {
		logger.Warn("no judge provider available; document analysis will degrade every clause")
	}
	return ai.NewChain(entries)
}

// buildEmbedder creates the embedding service, or nil when none is
// configured or reachable. Without it clauses complete unindexed and
// the ask command is unavailable.
func buildEmbedder(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	embedder, err := ai.CreateAndValidateEmbeddingService(settings)
	if err != nil {
		logger.Warn("embedding service unavailable: %v", err)
		return nil
	}
	return embedder
}

// buildIndex prefers pgvector when a connection string is configured
// and falls back to the in-memory index, which does not survive
// restarts.
func buildIndex(cfgStore *configfile.ConfigStore, dimensions int) driven.ClauseIndex {
	connString := cfgStore.GetString(configfile.KeyVectorConnString)
	if connString == "" {
		logger.Info("no vector store configured; using in-memory clause index")
		return vectormem.NewClauseIndex()
	}

	index, err := pgvector.NewClauseIndex(context.Background(), pgvector.Config{
		ConnString: connString,
		VectorDim:  dimensions,
	})
	if err != nil {
		logger.Warn("pgvector unavailable, using in-memory clause index: %v", err)
		return vectormem.NewClauseIndex()
	}
	return index
}

// buildExtractorRegistry registers every extractor whose system
// dependencies are present.
func buildExtractorRegistry() *extractors.Registry {
	registry := extractors.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(docx.New())

	if err := pdf.CheckAvailable(); err != nil {
		logger.Warn("pdf support disabled: %v", err)
	} else {
		registry.Register(pdf.New())
	}
	return registry
}

func containsProvider(order []domain.AIProvider, provider domain.AIProvider) bool {
	for _, p := range order {
		if p == provider {
			return true
		}
	}
	return false
}

// envAPIKey returns the conventional environment API key for cloud
// providers.
func envAPIKey(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
