package config

import (
	"github.com/rashtram/billrag/pkg/chunker"
	"github.com/rashtram/billrag/pkg/embeddings/gemini"
	"github.com/rashtram/billrag/pkg/embeddings/huggingface"
	"github.com/rashtram/billrag/pkg/embeddings/ollama"
	genaigemini "github.com/rashtram/billrag/pkg/genai/gemini"
	"github.com/rashtram/billrag/pkg/ingest"
)

const (
	defaultAPIListen = ":8090"

	defaultVectorProvider = "memory"

	defaultEventsProvider = "nop"

	defaultOllamaTarget = "http://localhost:11434"
)

// defaultEmbeddingProviders is the fallback chain in priority order.
func defaultEmbeddingProviders() []string {
	return []string{"huggingface", "gemini"}
}

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Embedding: EmbeddingConfig{
			Providers: defaultEmbeddingProviders(),
			HuggingFace: HuggingFaceConfig{
				Model: huggingface.DefaultModel,
			},
			Gemini: GeminiConfig{
				Model: gemini.DefaultModel,
			},
			Ollama: OllamaConfig{
				Target: defaultOllamaTarget,
				Model:  ollama.DefaultEmbeddingModel,
			},
		},
		VectorStore: VectorStoreConfig{
			Provider: defaultVectorProvider,
		},
		GenAI: GenAIConfig{
			Model: genaigemini.DefaultModel,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
		},
		Ingest: IngestConfig{
			Concurrency: ingest.DefaultConcurrency,
			ChunkSize:   chunker.DefaultChunkSize,
			Overlap:     chunker.DefaultOverlap,
		},
	}
}
