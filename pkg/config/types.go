package config

// Config represents the persistent billrag configuration stored as
// config.toml. The TOML layout uses sections for logical grouping.
type Config struct {
	API         APIConfig         `toml:"api" mapstructure:"api"`
	Embedding   EmbeddingConfig   `toml:"embedding" mapstructure:"embedding"`
	VectorStore VectorStoreConfig `toml:"vector_store" mapstructure:"vector_store"`
	GenAI       GenAIConfig       `toml:"genai" mapstructure:"genai"`
	Events      EventsConfig      `toml:"events" mapstructure:"events"`
	Ingest      IngestConfig      `toml:"ingest" mapstructure:"ingest"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty" mapstructure:"listen"`
}

// EmbeddingConfig holds embedding provider settings. Providers lists the
// fallback chain in priority order.
type EmbeddingConfig struct {
	Providers   []string          `toml:"providers,omitempty" mapstructure:"providers"`
	HuggingFace HuggingFaceConfig `toml:"huggingface" mapstructure:"huggingface"`
	Gemini      GeminiConfig      `toml:"gemini" mapstructure:"gemini"`
	Ollama      OllamaConfig      `toml:"ollama" mapstructure:"ollama"`
}

// HuggingFaceConfig holds Hugging Face inference API settings.
type HuggingFaceConfig struct {
	APIKey string `toml:"api_key,omitempty" mapstructure:"api_key"`
	Model  string `toml:"model,omitempty" mapstructure:"model"`
}

// GeminiConfig holds Gemini embedding settings.
type GeminiConfig struct {
	APIKey string `toml:"api_key,omitempty" mapstructure:"api_key"`
	Model  string `toml:"model,omitempty" mapstructure:"model"`
}

// OllamaConfig holds local Ollama embedding settings.
type OllamaConfig struct {
	Target string `toml:"target,omitempty" mapstructure:"target"`
	Model  string `toml:"model,omitempty" mapstructure:"model"`
}

// VectorStoreConfig holds vector store settings. Provider selects the
// driver: "memory", "pinecone" or "qdrant".
type VectorStoreConfig struct {
	Provider string         `toml:"provider,omitempty" mapstructure:"provider"`
	Pinecone PineconeConfig `toml:"pinecone" mapstructure:"pinecone"`
	Qdrant   QdrantConfig   `toml:"qdrant" mapstructure:"qdrant"`
}

// PineconeConfig holds Pinecone data-plane settings.
type PineconeConfig struct {
	IndexHost string `toml:"index_host,omitempty" mapstructure:"index_host"`
	APIKey    string `toml:"api_key,omitempty" mapstructure:"api_key"`
	Namespace string `toml:"namespace,omitempty" mapstructure:"namespace"`
}

// QdrantConfig holds Qdrant gRPC settings.
type QdrantConfig struct {
	Host       string `toml:"host,omitempty" mapstructure:"host"`
	Port       int    `toml:"port,omitempty" mapstructure:"port"`
	APIKey     string `toml:"api_key,omitempty" mapstructure:"api_key"`
	UseTLS     bool   `toml:"use_tls,omitempty" mapstructure:"use_tls"`
	Collection string `toml:"collection,omitempty" mapstructure:"collection"`
}

// GenAIConfig holds text generation settings.
type GenAIConfig struct {
	APIKey string `toml:"api_key,omitempty" mapstructure:"api_key"`
	Model  string `toml:"model,omitempty" mapstructure:"model"`
}

// EventsConfig holds event publishing settings. Provider selects the
// publisher: "nop" or "kafka".
type EventsConfig struct {
	Provider string      `toml:"provider,omitempty" mapstructure:"provider"`
	Kafka    KafkaConfig `toml:"kafka" mapstructure:"kafka"`
}

// KafkaConfig holds Kafka publisher settings.
type KafkaConfig struct {
	Brokers []string `toml:"brokers,omitempty" mapstructure:"brokers"`
	Topic   string   `toml:"topic,omitempty" mapstructure:"topic"`
}

// IngestConfig holds ingestion pipeline settings.
type IngestConfig struct {
	Concurrency int `toml:"concurrency,omitempty" mapstructure:"concurrency"`
	ChunkSize   int `toml:"chunk_size,omitempty" mapstructure:"chunk_size"`
	Overlap     int `toml:"overlap,omitempty" mapstructure:"overlap"`
}
