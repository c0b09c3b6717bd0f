package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads config.toml from the given
// directory (or the working directory when empty), and binds environment
// variables with the BILLRAG_ prefix.
//
// Config precedence (highest to lowest):
//  1. Environment variables (BILLRAG_API_LISTEN, BILLRAG_GENAI_API_KEY, etc.)
//  2. config.toml file values
//  3. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	} else {
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("BILLRAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// LoadConfig reads the effective configuration from a prepared viper
// instance.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Embedding
	v.SetDefault("embedding.providers", d.Embedding.Providers)
	v.SetDefault("embedding.huggingface.api_key", d.Embedding.HuggingFace.APIKey)
	v.SetDefault("embedding.huggingface.model", d.Embedding.HuggingFace.Model)
	v.SetDefault("embedding.gemini.api_key", d.Embedding.Gemini.APIKey)
	v.SetDefault("embedding.gemini.model", d.Embedding.Gemini.Model)
	v.SetDefault("embedding.ollama.target", d.Embedding.Ollama.Target)
	v.SetDefault("embedding.ollama.model", d.Embedding.Ollama.Model)

	// Vector store
	v.SetDefault("vector_store.provider", d.VectorStore.Provider)
	v.SetDefault("vector_store.pinecone.index_host", d.VectorStore.Pinecone.IndexHost)
	v.SetDefault("vector_store.pinecone.api_key", d.VectorStore.Pinecone.APIKey)
	v.SetDefault("vector_store.pinecone.namespace", d.VectorStore.Pinecone.Namespace)
	v.SetDefault("vector_store.qdrant.host", d.VectorStore.Qdrant.Host)
	v.SetDefault("vector_store.qdrant.port", d.VectorStore.Qdrant.Port)
	v.SetDefault("vector_store.qdrant.api_key", d.VectorStore.Qdrant.APIKey)
	v.SetDefault("vector_store.qdrant.use_tls", d.VectorStore.Qdrant.UseTLS)
	v.SetDefault("vector_store.qdrant.collection", d.VectorStore.Qdrant.Collection)

	// GenAI
	v.SetDefault("genai.api_key", d.GenAI.APIKey)
	v.SetDefault("genai.model", d.GenAI.Model)

	// Events
	v.SetDefault("events.provider", d.Events.Provider)
	v.SetDefault("events.kafka.brokers", d.Events.Kafka.Brokers)
	v.SetDefault("events.kafka.topic", d.Events.Kafka.Topic)

	// Ingest
	v.SetDefault("ingest.concurrency", d.Ingest.Concurrency)
	v.SetDefault("ingest.chunk_size", d.Ingest.ChunkSize)
	v.SetDefault("ingest.overlap", d.Ingest.Overlap)
}
