// Package app wires configuration into the concrete drivers and services
// that make up a running billrag instance. The CLI commands and the API
// server both build from here.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/chunker"
	"github.com/rashtram/billrag/pkg/config"
	"github.com/rashtram/billrag/pkg/embeddings"
	"github.com/rashtram/billrag/pkg/embeddings/chain"
	"github.com/rashtram/billrag/pkg/embeddings/gemini"
	"github.com/rashtram/billrag/pkg/embeddings/huggingface"
	"github.com/rashtram/billrag/pkg/embeddings/ollama"
	"github.com/rashtram/billrag/pkg/eventstream"
	eventskafka "github.com/rashtram/billrag/pkg/eventstream/kafka"
	"github.com/rashtram/billrag/pkg/eventstream/nop"
	"github.com/rashtram/billrag/pkg/extract"
	"github.com/rashtram/billrag/pkg/genai"
	genaigemini "github.com/rashtram/billrag/pkg/genai/gemini"
	"github.com/rashtram/billrag/pkg/ingest"
	"github.com/rashtram/billrag/pkg/rag"
	"github.com/rashtram/billrag/pkg/vector"
	"github.com/rashtram/billrag/pkg/vector/memory"
	"github.com/rashtram/billrag/pkg/vector/pinecone"
	"github.com/rashtram/billrag/pkg/vector/qdrantstore"
)

// App holds the constructed drivers and services for one billrag instance.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Store     vector.Driver
	Embedder  embeddings.Embedder
	Generator genai.Generator
	Events    eventstream.Publisher

	Retriever  *rag.Retriever
	Answerer   *rag.Answerer
	Summarizer *rag.Summarizer
	Ingester   *ingest.Service
}

// New builds an App from configuration. Construction fails fast on missing
// credentials so a misconfigured instance never half-starts.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	embedder, err := newEmbedder(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := newVectorDriver(ctx, cfg, logger)
	if err != nil {
		embedder.Close()
		return nil, err
	}

	generator, err := genaigemini.NewGenerator(genaigemini.Config{
		APIKey: cfg.GenAI.APIKey,
		Model:  cfg.GenAI.Model,
	}, logger)
	if err != nil {
		embedder.Close()
		store.Close()
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	events, err := newPublisher(cfg, logger)
	if err != nil {
		embedder.Close()
		store.Close()
		generator.Close()
		return nil, err
	}

	retriever := rag.NewRetriever(embedder, store, logger)
	answerer := rag.NewAnswerer(retriever, generator, logger)
	summarizer := rag.NewSummarizer(retriever, generator, logger)

	ingester := ingest.NewService(
		ingest.Config{Concurrency: cfg.Ingest.Concurrency},
		extract.NewExtractor(logger),
		chunker.New(cfg.Ingest.ChunkSize, cfg.Ingest.Overlap),
		embedder,
		store,
		summarizer,
		events,
		logger,
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Embedder:   embedder,
		Generator:  generator,
		Events:     events,
		Retriever:  retriever,
		Answerer:   answerer,
		Summarizer: summarizer,
		Ingester:   ingester,
	}, nil
}

// Close releases every driver the app holds. The first error wins; later
// closers still run.
func (a *App) Close() error {
	var firstErr error
	for _, closer := range []func() error{
		a.Events.Close,
		a.Generator.Close,
		a.Embedder.Close,
		a.Store.Close,
	} {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// newEmbedder builds the configured fallback chain of embedding providers.
func newEmbedder(cfg *config.Config, logger *zap.Logger) (embeddings.Embedder, error) {
	providers := make([]chain.Provider, 0, len(cfg.Embedding.Providers))

	for _, name := range cfg.Embedding.Providers {
		switch name {
		case "huggingface":
			e, err := huggingface.NewEmbedder(huggingface.Config{
				Token: cfg.Embedding.HuggingFace.APIKey,
				Model: cfg.Embedding.HuggingFace.Model,
			})
			if err != nil {
				return nil, fmt.Errorf("creating huggingface embedder: %w", err)
			}
			providers = append(providers, chain.Provider{Name: "huggingface", Embedder: e})

		case "gemini":
			e, err := gemini.NewEmbedder(gemini.Config{
				APIKey: cfg.Embedding.Gemini.APIKey,
				Model:  cfg.Embedding.Gemini.Model,
			})
			if err != nil {
				return nil, fmt.Errorf("creating gemini embedder: %w", err)
			}
			providers = append(providers, chain.Provider{Name: "gemini", Embedder: e})

		case "ollama":
			e, err := ollama.NewEmbedder(ollama.Config{
				BaseURL: cfg.Embedding.Ollama.Target,
				Model:   cfg.Embedding.Ollama.Model,
			})
			if err != nil {
				return nil, fmt.Errorf("creating ollama embedder: %w", err)
			}
			providers = append(providers, chain.Provider{Name: "ollama", Embedder: e})

		default:
			return nil, fmt.Errorf("unknown embedding provider %q", name)
		}
	}

	return chain.New(logger, providers...)
}

// newVectorDriver builds the configured vector store driver.
func newVectorDriver(ctx context.Context, cfg *config.Config, logger *zap.Logger) (vector.Driver, error) {
	switch cfg.VectorStore.Provider {
	case "memory", "":
		logger.Info("using in-memory vector store")
		return memory.NewDriver(), nil

	case "pinecone":
		return pinecone.NewDriver(pinecone.Config{
			IndexHost: cfg.VectorStore.Pinecone.IndexHost,
			APIKey:    cfg.VectorStore.Pinecone.APIKey,
			Namespace: cfg.VectorStore.Pinecone.Namespace,
		}, logger)

	case "qdrant":
		return qdrantstore.NewDriver(ctx, qdrantstore.Config{
			Host:           cfg.VectorStore.Qdrant.Host,
			Port:           cfg.VectorStore.Qdrant.Port,
			APIKey:         cfg.VectorStore.Qdrant.APIKey,
			UseTLS:         cfg.VectorStore.Qdrant.UseTLS,
			CollectionName: cfg.VectorStore.Qdrant.Collection,
		}, logger)

	default:
		return nil, fmt.Errorf("unknown vector store provider %q", cfg.VectorStore.Provider)
	}
}

// newPublisher builds the configured event publisher.
func newPublisher(cfg *config.Config, logger *zap.Logger) (eventstream.Publisher, error) {
	switch cfg.Events.Provider {
	case "nop", "":
		return nop.NewPublisher(), nil

	case "kafka":
		return eventskafka.NewPublisher(eventskafka.Config{
			Brokers: cfg.Events.Kafka.Brokers,
			Topic:   cfg.Events.Kafka.Topic,
		}, logger)

	default:
		return nil, fmt.Errorf("unknown events provider %q", cfg.Events.Provider)
	}
}
